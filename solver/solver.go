// Package solver implements the type solver of the tide IR: a union-find
// over partially known types, structural unification with an occurs check,
// and a fixed-point propagation loop driving user-registered type
// relations.
package solver

import (
	"log/slog"

	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"github.com/tide-lang/tide/internal/log"
	"github.com/tide-lang/tide/ir"
	"github.com/tide-lang/tide/tyerr"
)

var defaultLogger = ir.TypeLogger(log.DefaultLogger).With("section", "solver")

// typeNode is the solver's book-keeping record for one observed type.
// Only the root of an equivalence class carries an authoritative
// resolvedType; non-root nodes are stale.
type typeNode struct {
	resolvedType ir.Type
	parent       *typeNode
	relList      []*relationNode
}

// findRoot returns the class representative, compressing the path behind
// it.
func (n *typeNode) findRoot() *typeNode {
	root := n
	for root.parent != root {
		root = root.parent
	}
	for walker := n; walker != root; {
		next := walker.parent
		walker.parent = root
		walker = next
	}
	return root
}

// relationNode tracks one registered relation and the nodes of its
// arguments, in registration order.
type relationNode struct {
	rel      *ir.TypeRelation
	typeList []*typeNode
	resolved bool
	inqueue  bool
}

// Solver resolves equality and relational constraints over IR types.
// It is single-threaded; no method may be called concurrently.
type Solver struct {
	logger     *slog.Logger
	maxFirings int

	// append-only arenas; nodes live as long as the solver
	typeNodes []*typeNode
	relNodes  []*relationNode

	// interning map from a type object to its node
	tmap map[ir.Type]*typeNode

	// FIFO worklist of relations that may have new information to consume
	queue []*relationNode

	numResolvedRels int

	unifier  *unifier
	reporter *reporter
}

type Option func(*Solver)

// WithLogger replaces the solver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = ir.TypeLogger(logger)
	}
}

// WithMaxFirings aborts Solve with an error once any single Solve call has
// fired relations more than n times. Zero (the default) imposes no limit;
// termination is then the responsibility of the registered relations.
func WithMaxFirings(n int) Option {
	return func(s *Solver) {
		s.maxFirings = n
	}
}

func New(opts ...Option) *Solver {
	s := &Solver{
		logger: defaultLogger,
		tmap:   make(map[ir.Type]*typeNode),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unifier = newUnifier(s)
	s.reporter = &reporter{solver: s}
	return s
}

// getTypeNode interns t, allocating a fresh singleton node on first sight.
func (s *Solver) getTypeNode(t ir.Type) *typeNode {
	if node, ok := s.tmap[t]; ok {
		return node
	}
	node := &typeNode{resolvedType: t}
	node.parent = node
	s.typeNodes = append(s.typeNodes, node)
	s.tmap[t] = node
	return node
}

// mergeFromTo points src's class at dst's, carrying src's relation list
// over and enqueueing any relation that may now learn something. The
// destination keeps its resolvedType.
func (s *Solver) mergeFromTo(src, dst *typeNode) {
	srcRoot, dstRoot := src.findRoot(), dst.findRoot()
	if srcRoot == dstRoot {
		return
	}
	srcRoot.parent = dstRoot
	dstRoot.relList = append(dstRoot.relList, srcRoot.relList...)
	for _, rel := range srcRoot.relList {
		if !rel.resolved {
			s.addToQueue(rel)
		}
	}
	srcRoot.relList = nil
}

func (s *Solver) addToQueue(rel *relationNode) {
	if rel.inqueue {
		return
	}
	rel.inqueue = true
	s.queue = append(s.queue, rel)
}

func (s *Solver) dropFromQueue(rel *relationNode) {
	for i, queued := range s.queue {
		if queued == rel {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	rel.inqueue = false
}

// Unify adds the equality dst = src and returns the merged type.
func (s *Solver) Unify(dst, src ir.Type) (ir.Type, error) {
	return s.unifier.unify(src, dst)
}

// AddConstraint registers a relation with the solver and schedules its
// first firing.
func (s *Solver) AddConstraint(constraint ir.TypeConstraint) error {
	rel, ok := constraint.(*ir.TypeRelation)
	if !ok {
		return tyerr.New(tyerr.NewUnknownConstraint{Constraint: constraint})
	}
	rnode := &relationNode{rel: rel}
	s.relNodes = append(s.relNodes, rnode)
	for _, arg := range rel.Args {
		tnode := s.getTypeNode(arg)
		rnode.typeList = append(rnode.typeList, tnode)
		s.propagate(rnode, tnode.resolvedType)
	}
	s.addToQueue(rnode)
	s.logger.Debug("registered relation", "rel", rel.Name, "args", len(rel.Args))
	return nil
}

// Solve drives the worklist to a fixed point. It reports whether every
// registered relation has resolved; leftover incomplete types do not count
// against success.
func (s *Solver) Solve() (bool, error) {
	firings := 0
	for len(s.queue) > 0 {
		rnode := s.queue[0]
		s.queue = s.queue[1:]
		if rnode.resolved {
			panic("solver: resolved relation found in worklist")
		}

		args := make([]ir.Type, 0, len(rnode.typeList))
		for _, tnode := range rnode.typeList {
			args = append(args, s.Resolve(tnode.findRoot().resolvedType))
			if len(args) > len(rnode.rel.Args) {
				panic("solver: relation argument list grew past its registration")
			}
		}
		// clear inqueue before invoking so the relation's own Assign
		// calls may re-enqueue it
		rnode.inqueue = false

		if s.maxFirings > 0 {
			firings++
			if firings > s.maxFirings {
				return false, errors.Errorf("solver: exceeded %d relation firings, assuming a non-monotone relation (last: %s)",
					s.maxFirings, rnode.rel.Name)
			}
		}

		s.logger.Debug("firing relation", "rel", rnode.rel.Name)
		resolved, err := rnode.rel.Func(args, rnode.rel.NumInputs, rnode.rel.Attrs, s.reporter)
		if err != nil {
			return false, errors.Wrapf(err, "firing relation %s", rnode.rel.Name)
		}
		if resolved {
			s.numResolvedRels++
			// the relation's own assignments may have re-enqueued it; a
			// resolved relation must not sit in the worklist
			if rnode.inqueue {
				s.dropFromQueue(rnode)
			}
		}
		rnode.resolved = resolved
	}
	if s.numResolvedRels != len(s.relNodes) {
		s.logger.Warn("fixed point reached with unresolved relations",
			"resolved", s.numResolvedRels, "total", len(s.relNodes))
	}
	return s.numResolvedRels == len(s.relNodes), nil
}

// Unresolved returns the set of incomplete types still reachable from t
// under current knowledge. Useful after Solve returns false.
func (s *Solver) Unresolved(t ir.Type) *set.HashSet[*ir.IncompleteType, uint64] {
	out := set.NewHashSet[*ir.IncompleteType, uint64](0)
	s.collectUnresolved(s.Resolve(t), out)
	return out
}

func (s *Solver) collectUnresolved(t ir.Type, out *set.HashSet[*ir.IncompleteType, uint64]) {
	switch t := t.(type) {
	case *ir.IncompleteType:
		resolved := s.Resolve(t)
		if resolved == ir.Type(t) {
			out.Insert(t)
			return
		}
		s.collectUnresolved(resolved, out)
	case *ir.TupleType:
		for _, field := range t.Fields {
			s.collectUnresolved(field, out)
		}
	case *ir.FuncType:
		s.collectUnresolved(t.RetType, out)
		for _, arg := range t.ArgTypes {
			s.collectUnresolved(arg, out)
		}
		for _, constraint := range t.TypeConstraints {
			s.collectUnresolved(constraint, out)
		}
	case *ir.TypeRelation:
		for _, arg := range t.Args {
			s.collectUnresolved(arg, out)
		}
	}
}

// DebugHandles exposes the solver's operations under named handles for
// external test harnesses.
type DebugHandles struct {
	Solve         func() (bool, error)
	Unify         func(dst, src ir.Type) (ir.Type, error)
	Resolve       func(t ir.Type) ir.Type
	AddConstraint func(c ir.TypeConstraint) error
}

func (s *Solver) Debug() DebugHandles {
	return DebugHandles{
		Solve:         s.Solve,
		Unify:         s.Unify,
		Resolve:       s.Resolve,
		AddConstraint: s.AddConstraint,
	}
}
