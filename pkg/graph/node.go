package graph

import (
	"fmt"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp"
)

type processor interface {
	process(out []float32)
}

// edge is an outgoing connection to exactly one of node or param.
type edge struct {
	node  *node
	param *Param
}

// node carries the connection and memoization state shared by every node
// type. Concrete nodes embed it and install themselves as proc.
type node struct {
	ctx  *Context
	name string
	proc processor
	sink bool // accepts inputs

	inputs []*node
	outs   []edge

	buf   []float32
	stamp uint64
	busy  bool
}

func (n *node) core() *node { return n }

// Connect routes this node's output into dst's input.
func (n *node) Connect(dst audio.Node) error {
	g, ok := dst.(interface{ core() *node })
	if !ok || g.core().ctx != n.ctx {
		return audio.ErrForeignNode
	}
	target := g.core()

	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	if !target.sink {
		return fmt.Errorf("connect %s to %s: %w", n.name, target.name, audio.ErrInvalidState)
	}
	for _, e := range n.outs {
		if e.node == target {
			return nil
		}
	}
	n.outs = append(n.outs, edge{node: target})
	target.inputs = append(target.inputs, n)
	return nil
}

// ConnectParam adds this node's output to dst's value.
func (n *node) ConnectParam(dst audio.Param) error {
	p, ok := dst.(*Param)
	if !ok || p.ctx != n.ctx {
		return audio.ErrForeignNode
	}

	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	for _, e := range n.outs {
		if e.param == p {
			return nil
		}
	}
	n.outs = append(n.outs, edge{param: p})
	p.inputs = append(p.inputs, n)
	return nil
}

// Disconnect removes every outgoing connection.
func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()

	for _, e := range n.outs {
		if e.node != nil {
			e.node.inputs = without(e.node.inputs, n)
		} else {
			e.param.inputs = without(e.param.inputs, n)
		}
	}
	n.outs = nil
}

// String returns the node type name.
func (n *node) String() string {
	return n.name
}

// pull returns the node's output for the current quantum, computing it on
// the first request. A node reached again while it is still being computed
// closes a cycle and yields silence.
func (n *node) pull() []float32 {
	c := n.ctx
	if n.stamp == c.stamp {
		return n.buf
	}
	if n.busy {
		return c.silence
	}
	n.busy = true
	n.proc.process(n.buf)
	n.busy = false
	n.stamp = c.stamp
	return n.buf
}

// mix sums every input into out.
func (n *node) mix(out []float32) {
	dsp.Clear(out)
	for _, in := range n.inputs {
		dsp.Add(out, in.pull())
	}
}

func without(nodes []*node, n *node) []*node {
	kept := nodes[:0]
	for _, x := range nodes {
		if x != n {
			kept = append(kept, x)
		}
	}
	for i := len(kept); i < len(nodes); i++ {
		nodes[i] = nil
	}
	return kept
}

// mixer passes the summed input through unchanged.
type mixer struct {
	n *node
}

func (m mixer) process(out []float32) {
	m.n.mix(out)
}
