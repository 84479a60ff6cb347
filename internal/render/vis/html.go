package vis

var html = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>knowmap</title>
    <style>
        * {
            margin: 0;
        }
        #mynetwork {
            width: 100vw;
            height: 100vh;
        }
    </style>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="mynetwork"></div>
    <script type="text/javascript">
const graph = %s;

const container = document.getElementById("mynetwork");

const options = {
  physics: {
    enabled: false,
  },
  nodes: {
    shape: "dot",
  },
  edges: {
    arrows: "to",
    smooth: { type: "curvedCW", roundness: 0.2 },
  },
};

new vis.Network(container, {
  nodes: new vis.DataSet(graph.nodes),
  edges: new vis.DataSet(graph.edges),
}, options);
    </script>
  </body>
</html>`
