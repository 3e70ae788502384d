package network

import (
	G "gorgonia.org/gorgonia"
)

// LogSumExp adds log(sum(exp(logits))) along an axis to the graph,
// subtracting the maximum first for numerical stability
func LogSumExp(logits *G.Node, along int) *G.Node {
	// Calculate the max logit per row
	max := G.Must(G.Max(logits, along))

	exponent := G.Must(G.BroadcastSub(logits, max, nil, []byte{1}))
	exponent = G.Must(G.Exp(exponent))

	sum := G.Must(G.Sum(exponent, along))
	log := G.Must(G.Log(sum))

	return G.Must(G.Add(max, log))
}

// CrossEntropy adds the mean softmax cross-entropy between logits and
// one-hot targets to the graph. Both must have shape (batch, classes).
func CrossEntropy(logits, targets *G.Node) *G.Node {
	picked := G.Must(G.HadamardProd(targets, logits))
	picked = G.Must(G.Sum(picked, 1))

	logProb := G.Must(G.Sub(picked, LogSumExp(logits, 1)))
	return G.Must(G.Neg(G.Must(G.Mean(logProb))))
}
