package refs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/erraggy/oasedit"
	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
)

// DefaultMaxDepth is the maximum length of a resolution chain. Cycles are
// detected exactly, so this only guards against pathologically long (but
// acyclic) chains.
const DefaultMaxDepth = 100

// State classifies a resolved reference.
type State int

const (
	// StateResolved means the target exists in the document.
	StateResolved State = iota
	// StateDangling means the target path does not exist. Cross-document
	// references are always dangling; they are never fetched.
	StateDangling
	// StateCyclic means the resolution chain revisited a reference it had
	// already followed.
	StateCyclic
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateDangling:
		return "dangling"
	case StateCyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ResolvedRef is the resolver's answer for one reference string within one
// document generation.
type ResolvedRef struct {
	// Ref is the reference string the caller asked about
	Ref string
	// State classifies the result
	State State
	// Path is the canonical pointer to the target ("" unless Resolved)
	Path string
	// Target is the target node (nil unless Resolved)
	Target *node.Node
	// Chain is the sequence of reference strings followed, starting with
	// Ref. For Cyclic results the final entry is the revisited reference
	// that closed the cycle.
	Chain []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets a structured logger for resolution debug output.
func WithLogger(logger oasedit.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxDepth caps the resolution chain length. Values below 1 keep the
// default.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth >= 1 {
			r.maxDepth = depth
		}
	}
}

// Resolver resolves references within one Document, memoizing results per
// generation.
//
// Resolve is safe for concurrent use by read-only queries within one
// generation: the memo table is lock-guarded and the underlying document is
// not mutated during reads. The memo is discarded wholesale the first time
// Resolve observes an advanced generation.
type Resolver struct {
	doc      *node.Document
	logger   oasedit.Logger
	maxDepth int

	mu   sync.RWMutex
	gen  uint64
	memo map[string]ResolvedRef
}

// New creates a Resolver for doc.
func New(doc *node.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:      doc,
		logger:   oasedit.NopLogger{},
		maxDepth: DefaultMaxDepth,
		memo:     make(map[string]ResolvedRef),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies ref against the resolver's document.
//
// The only error condition is malformed pointer syntax, reported as an
// [oaserrors.ReferenceError]. Missing targets and cycles are returned as
// Dangling and Cyclic results respectively.
func (r *Resolver) Resolve(ref string) (ResolvedRef, error) {
	gen := r.doc.Generation()

	r.mu.RLock()
	if r.gen == gen {
		if res, ok := r.memo[ref]; ok {
			r.mu.RUnlock()
			return res, nil
		}
	}
	r.mu.RUnlock()

	res, err := r.resolve(ref, []string{ref})
	if err != nil {
		return ResolvedRef{}, err
	}
	r.logger.Debug("resolved reference", "ref", ref, "state", res.State.String(), "chainLen", len(res.Chain))

	r.mu.Lock()
	if r.gen != gen {
		// Generation advanced since we last stored anything: every cached
		// answer may be stale, so drop them all rather than patching.
		r.memo = make(map[string]ResolvedRef)
		r.gen = gen
	}
	r.memo[ref] = res
	r.mu.Unlock()

	return res, nil
}

// resolve performs one uncached resolution. chain carries every reference
// string followed so far, starting with the caller's original ref.
func (r *Resolver) resolve(ref string, chain []string) (ResolvedRef, error) {
	orig := chain[0]

	if !strings.HasPrefix(ref, "#") {
		// Cross-document reference: out of scope by policy, never fetched.
		return ResolvedRef{Ref: orig, State: StateDangling, Chain: chain}, nil
	}
	tokens, err := node.SplitPointer(ref[1:])
	if err != nil {
		return ResolvedRef{}, &oaserrors.ReferenceError{Ref: ref, Message: err.Error()}
	}

	cur := r.doc.Root()
	base := ""

	for i := 0; ; i++ {
		// Follow any reference at the current position, including one at
		// the end of the token walk: the answer is always the content the
		// pointer ultimately designates.
		for cur.IsReference() {
			next := cur.Ref()
			if slices.Contains(chain, next) {
				return ResolvedRef{Ref: orig, State: StateCyclic, Chain: append(chain, next)}, nil
			}
			if len(chain) >= r.maxDepth {
				return ResolvedRef{}, &oaserrors.ReferenceError{
					Ref:     next,
					Message: fmt.Sprintf("resolution chain exceeds %d references", r.maxDepth),
				}
			}
			sub, err := r.resolve(next, append(chain, next))
			if err != nil {
				return ResolvedRef{}, err
			}
			if sub.State != StateResolved {
				sub.Ref = orig
				return sub, nil
			}
			cur = sub.Target
			base = sub.Path
			chain = sub.Chain
		}

		if i == len(tokens) {
			break
		}
		token := tokens[i]

		switch cur.Kind() {
		case node.KindMapping:
			child, ok := cur.Get(token)
			if !ok {
				return ResolvedRef{Ref: orig, State: StateDangling, Chain: chain}, nil
			}
			cur = child
		case node.KindSequence:
			idx, convErr := strconv.Atoi(token)
			if convErr != nil || idx < 0 || idx >= cur.Len() {
				return ResolvedRef{Ref: orig, State: StateDangling, Chain: chain}, nil
			}
			cur = cur.ItemAt(idx)
		default:
			// Scalars have no children to descend into.
			return ResolvedRef{Ref: orig, State: StateDangling, Chain: chain}, nil
		}
		base += "/" + node.EscapeToken(token)
	}

	return ResolvedRef{Ref: orig, State: StateResolved, Path: base, Target: cur, Chain: chain}, nil
}
