package network

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/samuelfneumann/rlharness/initwfn"
	"github.com/samuelfneumann/rlharness/solver"
	"golang.org/x/exp/rand"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// MLP implements a multi-layered perceptron trained with the softmax
// cross-entropy loss.
//
// The MLP owns its parameters outside of any computational graph.
// Graphs are built per batch size and cached; parameter values are
// copied into a graph before it is run and copied back out after each
// solver step.
type MLP struct {
	features    int
	outputs     int
	hiddenSizes []int
	activations []*Activation

	// params holds the weights and bias of each layer in order, with
	// shapes (in, out) and (1, out)
	params []*tensor.Dense

	solverConfig *solver.Solver
	solver       G.Solver

	pred *graph
	fit  *graph
}

// graph is a computational graph of the MLP for a fixed batch size
type graph struct {
	g          *G.ExprGraph
	batch      int
	input      *G.Node
	targets    *G.Node
	learnables G.Nodes
	model      []G.ValueGrad
	outVal     G.Value
	lossVal    G.Value
	vm         G.VM
}

// NewMLP creates and returns a new multi-layered perceptron.
//
// The MLP has len(hiddenSizes) + 1 layers. Hidden layer i has
// hiddenSizes[i] units and activation activations[i]. A final linear
// layer always maps to outputs units. Weights are drawn from init
// using a source seeded with seed and biases are initialized to 0.
func NewMLP(features, outputs int, hiddenSizes []int,
	activations []*Activation, init *initwfn.InitWFn, s *solver.Solver,
	seed uint64) (*MLP, error) {
	// Ensure we have one activation per layer
	if len(hiddenSizes) != len(activations) {
		msg := "newMLP: invalid number of activations\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}
	if features <= 0 || outputs <= 0 {
		return nil, &Error{"newMLP", fmt.Errorf("%w: features and outputs "+
			"must be positive\n\thave(%d, %d)", ErrShape, features, outputs)}
	}
	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, &Error{"newMLP", fmt.Errorf("%w: hidden layer %d "+
				"must have positive size\n\thave(%d)", ErrShape, i, size)}
		}
	}
	if init == nil || s == nil {
		return nil, fmt.Errorf("newMLP: nil initializer or solver")
	}

	sizes := append([]int{features}, hiddenSizes...)
	sizes = append(sizes, outputs)

	src := rand.NewSource(seed)
	params := make([]*tensor.Dense, 0, 2*(len(sizes)-1))
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		weights := tensor.New(
			tensor.WithShape(in, out),
			tensor.WithBacking(init.Initialize(src, in, out)),
		)
		bias := tensor.New(
			tensor.WithShape(1, out),
			tensor.WithBacking(make([]float64, out)),
		)
		params = append(params, weights, bias)
	}

	hidden := make([]int, len(hiddenSizes))
	copy(hidden, hiddenSizes)
	acts := make([]*Activation, len(activations))
	copy(acts, activations)

	return &MLP{
		features:     features,
		outputs:      outputs,
		hiddenSizes:  hidden,
		activations:  acts,
		params:       params,
		solverConfig: s,
		solver:       s.Create(),
	}, nil
}

// Features returns the number of features in a single input row
func (m *MLP) Features() int {
	return m.features
}

// Outputs returns the number of outputs of the network
func (m *MLP) Outputs() int {
	return m.outputs
}

// Params returns a copy of the values of each weight and bias in
// layer order
func (m *MLP) Params() [][]float64 {
	out := make([][]float64, len(m.params))
	for i, p := range m.params {
		data := p.Data().([]float64)
		out[i] = make([]float64, len(data))
		copy(out[i], data)
	}
	return out
}

// Forward returns the scores of rows input rows
func (m *MLP) Forward(input []float64, rows int) ([]float64, error) {
	if rows <= 0 || len(input) != rows*m.features {
		return nil, &Error{"forward", fmt.Errorf("%w: invalid number of "+
			"inputs\n\twant(%d x %d)\n\thave(%d)", ErrShape, rows, m.features,
			len(input))}
	}

	if m.pred == nil || m.pred.batch != rows {
		g, err := m.build(rows, false)
		if err != nil {
			return nil, err
		}
		m.pred = g
	}
	g := m.pred
	defer g.vm.Reset()

	m.syncIn(g)
	if err := g.setInput(input, m.features); err != nil {
		return nil, err
	}
	if err := g.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("forward: %v", err)
	}

	out := make([]float64, rows*m.outputs)
	copy(out, g.outVal.Data().([]float64))
	return out, nil
}

// FitStep performs a single solver step on the mean softmax
// cross-entropy between the network's scores and the class targets,
// returning the loss before the step. An empty batch is a no-op.
func (m *MLP) FitStep(input []float64, targets []int) (float64, error) {
	rows := len(targets)
	if rows == 0 && len(input) == 0 {
		return 0, nil
	}
	if len(input) != rows*m.features {
		return 0, &Error{"fitStep", fmt.Errorf("%w: invalid number of "+
			"inputs\n\twant(%d x %d)\n\thave(%d)", ErrShape, rows, m.features,
			len(input))}
	}
	for i, t := range targets {
		if t < 0 || t >= m.outputs {
			return 0, &Error{"fitStep", fmt.Errorf("%w: target %d out of "+
				"range\n\twant(0 <= target < %d)\n\thave(%d)", ErrShape, i,
				m.outputs, t)}
		}
	}

	// Reductions over a batch of one collapse to scalars in the graph,
	// so a single row is duplicated. The mean loss and its gradient are
	// unchanged.
	if rows == 1 {
		input = append(append([]float64{}, input...), input...)
		targets = []int{targets[0], targets[0]}
		rows = 2
	}

	if m.fit == nil || m.fit.batch != rows {
		g, err := m.build(rows, true)
		if err != nil {
			return 0, err
		}
		m.fit = g
	}
	g := m.fit
	defer g.vm.Reset()

	m.syncIn(g)
	if err := g.setInput(input, m.features); err != nil {
		return 0, err
	}
	if err := g.setTargets(targets, m.outputs); err != nil {
		return 0, err
	}

	if err := g.vm.RunAll(); err != nil {
		return 0, fmt.Errorf("fitStep: %v", err)
	}
	if err := m.solver.Step(g.model); err != nil {
		return 0, fmt.Errorf("fitStep: could not step solver: %v", err)
	}
	m.syncOut(g)

	return g.lossVal.Data().(float64), nil
}

// Clone returns a deep copy of the MLP with a fresh solver
func (m *MLP) Clone() (Approximator, error) {
	return m.CloneMLP(), nil
}

// CloneMLP returns a deep copy of the MLP with a fresh solver
func (m *MLP) CloneMLP() *MLP {
	params := make([]*tensor.Dense, len(m.params))
	for i := range m.params {
		params[i] = m.params[i].Clone().(*tensor.Dense)
	}

	hidden := make([]int, len(m.hiddenSizes))
	copy(hidden, m.hiddenSizes)
	acts := make([]*Activation, len(m.activations))
	copy(acts, m.activations)

	return &MLP{
		features:     m.features,
		outputs:      m.outputs,
		hiddenSizes:  hidden,
		activations:  acts,
		params:       params,
		solverConfig: m.solverConfig,
		solver:       m.solverConfig.Create(),
	}
}

// Set sets the parameters of the MLP to copies of those of source,
// which must have the same architecture
func (m *MLP) Set(source *MLP) error {
	if len(source.params) != len(m.params) {
		return &Error{"set", fmt.Errorf("%w: different number of layers",
			ErrShape)}
	}
	for i := range m.params {
		dst := m.params[i].Data().([]float64)
		src := source.params[i].Data().([]float64)
		if len(dst) != len(src) {
			return &Error{"set", fmt.Errorf("%w: layer %d", ErrShape, i/2)}
		}
		copy(dst, src)
	}
	return nil
}

// build constructs the computational graph for a batch size. If fit,
// the graph also computes the loss and its gradient.
func (m *MLP) build(batch int, fit bool) (*graph, error) {
	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, m.features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	acts := append(append([]*Activation{}, m.activations...), Identity())
	learnables := make(G.Nodes, 0, len(m.params))

	pred := input
	var err error
	for i := 0; i < len(m.params)/2; i++ {
		layer := newFCLayer(g, i, m.params[2*i], m.params[2*i+1], acts[i])
		if pred, err = layer.fwd(pred); err != nil {
			msg := "build: could not compute forward pass of layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
		learnables = append(learnables, layer.learnables()...)
	}

	out := &graph{
		g:          g,
		batch:      batch,
		input:      input,
		learnables: learnables,
	}
	G.Read(pred, &out.outVal)

	if !fit {
		out.vm = G.NewTapeMachine(g)
		return out, nil
	}

	out.targets = G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, m.outputs), G.WithName("targets"),
		G.WithInit(G.Zeroes()))
	loss := CrossEntropy(pred, out.targets)
	G.Read(loss, &out.lossVal)

	if _, err := G.Grad(loss, learnables...); err != nil {
		return nil, fmt.Errorf("build: could not compute gradient: %v", err)
	}

	out.model = make([]G.ValueGrad, 0, len(learnables))
	for _, node := range learnables {
		out.model = append(out.model, node)
	}
	out.vm = G.NewTapeMachine(g, G.BindDualValues(learnables...))
	return out, nil
}

// syncIn copies the MLP's parameters into the graph's learnables
func (m *MLP) syncIn(g *graph) {
	for i, node := range g.learnables {
		copy(node.Value().Data().([]float64), m.params[i].Data().([]float64))
	}
}

// syncOut copies the graph's learnables into the MLP's parameters
func (m *MLP) syncOut(g *graph) {
	for i, node := range g.learnables {
		copy(m.params[i].Data().([]float64), node.Value().Data().([]float64))
	}
}

func (g *graph) setInput(input []float64, features int) error {
	data := make([]float64, len(input))
	copy(data, input)
	t := tensor.New(tensor.WithShape(g.batch, features),
		tensor.WithBacking(data))
	return G.Let(g.input, t)
}

func (g *graph) setTargets(targets []int, outputs int) error {
	data := make([]float64, len(targets)*outputs)
	for i, t := range targets {
		data[i*outputs+t] = 1.0
	}
	t := tensor.New(tensor.WithShape(g.batch, outputs),
		tensor.WithBacking(data))
	return G.Let(g.targets, t)
}

// mlpGob is the serialized form of an MLP
type mlpGob struct {
	Features    int
	Outputs     int
	HiddenSizes []int
	Activations []*Activation
	Params      [][]float64
	Solver      []byte
}

// GobEncode implements the gob.GobEncoder interface. Solver state is
// not encoded.
func (m *MLP) GobEncode() ([]byte, error) {
	s, err := json.Marshal(m.solverConfig)
	if err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode solver: %v", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err = enc.Encode(mlpGob{
		Features:    m.features,
		Outputs:     m.outputs,
		HiddenSizes: m.hiddenSizes,
		Activations: m.activations,
		Params:      m.Params(),
		Solver:      s,
	})
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (m *MLP) GobDecode(in []byte) error {
	var decoded mlpGob
	dec := gob.NewDecoder(bytes.NewReader(in))
	if err := dec.Decode(&decoded); err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	var s solver.Solver
	if err := json.Unmarshal(decoded.Solver, &s); err != nil {
		return fmt.Errorf("gobDecode: could not decode solver: %v", err)
	}

	sizes := append([]int{decoded.Features}, decoded.HiddenSizes...)
	sizes = append(sizes, decoded.Outputs)
	if len(decoded.Params) != 2*(len(sizes)-1) {
		return fmt.Errorf("gobDecode: invalid number of parameters"+
			"\n\twant(%d)\n\thave(%d)", 2*(len(sizes)-1), len(decoded.Params))
	}

	params := make([]*tensor.Dense, 0, len(decoded.Params))
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		w, b := decoded.Params[2*i], decoded.Params[2*i+1]
		if len(w) != in*out || len(b) != out {
			return fmt.Errorf("gobDecode: invalid parameter shapes in "+
				"layer %d", i)
		}
		params = append(params,
			tensor.New(tensor.WithShape(in, out), tensor.WithBacking(w)),
			tensor.New(tensor.WithShape(1, out), tensor.WithBacking(b)),
		)
	}

	*m = MLP{
		features:     decoded.Features,
		outputs:      decoded.Outputs,
		hiddenSizes:  decoded.HiddenSizes,
		activations:  decoded.Activations,
		params:       params,
		solverConfig: &s,
		solver:       s.Create(),
	}
	return nil
}
