package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// fcLayer implements a fully connected layer of a feed forward neural
// network
type fcLayer struct {
	weights *G.Node
	bias    *G.Node
	act     *Activation
}

// newFCLayer adds a fully connected layer to g. The layer's weights and
// bias are initialized to copies of the given values, which must have
// shapes (in, out) and (1, out).
func newFCLayer(g *G.ExprGraph, i int, weights, bias *tensor.Dense,
	act *Activation) *fcLayer {
	w := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(weights.Shape()...),
		G.WithName(fmt.Sprintf("W%d", i)),
		G.WithValue(weights.Clone().(*tensor.Dense)),
	)
	b := G.NewMatrix(
		g,
		tensor.Float64,
		G.WithShape(bias.Shape()...),
		G.WithName(fmt.Sprintf("b%d", i)),
		G.WithValue(bias.Clone().(*tensor.Dense)),
	)
	return &fcLayer{weights: w, bias: b, act: act}
}

// fwd adds the forward pass of the fcLayer to the computational graph
func (f *fcLayer) fwd(x *G.Node) (*G.Node, error) {
	x, err := G.Mul(x, f.weights)
	if err != nil {
		return nil, err
	}

	// Broadcast the bias weights to all samples along the batch
	// dimension
	x, err = G.BroadcastAdd(x, f.bias, nil, []byte{0})
	if err != nil {
		return nil, err
	}

	if f.act == nil {
		return x, nil
	}
	return f.act.fwd(x)
}

// learnables returns the weights and bias of the layer
func (f *fcLayer) learnables() G.Nodes {
	return G.Nodes{f.weights, f.bias}
}
