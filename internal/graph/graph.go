// Package graph owns the in-memory tournament structure: blocks placed on a
// canvas and the directed connections between them. Every mutation goes
// through Store so its invariants hold after each call:
//
//   - no connection references a block that is not in the store
//   - no two connections share the same ordered (from, to) pair
//   - no connection starts and ends at the same block
//   - every position has x >= 0 and y >= 0
package graph

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/log"
)

var (
	// ErrUnknownBlock is returned when an id does not name a block.
	ErrUnknownBlock = errors.New("unknown block")
	// ErrUnknownConnection is returned when an id does not name a connection.
	ErrUnknownConnection = errors.New("unknown connection")
	// ErrInvalidConnection is returned by AddConnection for self-loops,
	// dangling endpoints and duplicate edges.
	ErrInvalidConnection = errors.New("invalid connection")
	// ErrAmbiguous is returned when a reference matches more than one item.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// Position is a point in canvas space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Clamp pins both coordinates to the non-negative quadrant. Non-finite
// coordinates become 0.
func (p Position) Clamp() Position {
	return Position{X: clampCoord(p.X), Y: clampCoord(p.Y)}
}

func clampCoord(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Delta is a relative move.
type Delta struct {
	DX float64
	DY float64
}

// Block is a tournament stage placed on the canvas.
type Block struct {
	ID           string
	Kind         block.Kind
	Title        string
	Position     Position
	Config       block.Config
	Participants []any
}

func (b *Block) clone() Block {
	out := *b
	out.Config = b.Config.Clone()
	if b.Participants != nil {
		out.Participants = append(make([]any, 0, len(b.Participants)), b.Participants...)
	}
	return out
}

// Connection is a directed edge: the output of From feeds To.
type Connection struct {
	ID   string
	From string
	To   string
}

// Stats holds summary counts.
type Stats struct {
	Blocks      int
	Connections int
	Kinds       map[block.Kind]int
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid based id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the single owner of a Graph.
type Store struct {
	mu          sync.RWMutex
	name        string
	blocks      map[string]*Block
	order       []string
	connections []*Connection

	newID  func() string
	logger zerolog.Logger

	lmu       sync.Mutex
	listeners map[int]func()
	nextSub   int
}

// New creates an empty store.
func New(name string, opts ...Option) *Store {
	s := &Store{
		name:        name,
		blocks:      make(map[string]*Block),
		connections: make([]*Connection, 0),
		newID:       uuid.NewString,
		logger:      *log.Logger(),
		listeners:   make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to run after every successful mutation. The
// returned func removes it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	s.lmu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Store) unknown(op, id string) {
	s.logger.Debug().Str("op", op).Str("id", id).Msg("graph: unknown id, ignoring")
}

// ─── Name ───

// Name returns the graph name.
func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetName renames the graph.
func (s *Store) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.notify()
}

// ─── Blocks ───

// AddBlock places a new block of kind k at pos with the kind's default
// config. An empty title falls back to the kind's label.
func (s *Store) AddBlock(k block.Kind, pos Position, title string) Block {
	if title == "" {
		title = block.Label(k)
	}
	b := &Block{
		ID:           s.newID(),
		Kind:         k,
		Title:        title,
		Position:     pos.Clamp(),
		Config:       block.DefaultConfig(k),
		Participants: make([]any, 0),
	}

	s.mu.Lock()
	for s.blocks[b.ID] != nil {
		b.ID = s.newID()
	}
	s.blocks[b.ID] = b
	s.order = append(s.order, b.ID)
	out := b.clone()
	s.mu.Unlock()

	s.notify()
	return out
}

// MovePosition shifts a block by delta, clamping at zero. It reports
// whether id named a block.
func (s *Store) MovePosition(id string, delta Delta) bool {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if ok {
		b.Position = Position{X: b.Position.X + delta.DX, Y: b.Position.Y + delta.DY}.Clamp()
	}
	s.mu.Unlock()

	if !ok {
		s.unknown("move", id)
		return false
	}
	s.notify()
	return true
}

// UpdateConfig replaces a block's config wholesale.
func (s *Store) UpdateConfig(id string, cfg block.Config) bool {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if ok {
		b.Config = cfg.Clone()
	}
	s.mu.Unlock()

	if !ok {
		s.unknown("update_config", id)
		return false
	}
	s.notify()
	return true
}

// UpdateTitle replaces a block's title.
func (s *Store) UpdateTitle(id, title string) bool {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if ok {
		b.Title = title
	}
	s.mu.Unlock()

	if !ok {
		s.unknown("update_title", id)
		return false
	}
	s.notify()
	return true
}

// RemoveBlock deletes a block and every connection touching it.
func (s *Store) RemoveBlock(id string) bool {
	s.mu.Lock()
	_, ok := s.blocks[id]
	if ok {
		delete(s.blocks, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}

		// Cascade: drop every connection with this block as an endpoint
		filtered := make([]*Connection, 0, len(s.connections))
		for _, c := range s.connections {
			if c.From != id && c.To != id {
				filtered = append(filtered, c)
			}
		}
		s.connections = filtered
	}
	s.mu.Unlock()

	if !ok {
		s.unknown("remove_block", id)
		return false
	}
	s.notify()
	return true
}

// Block returns a copy of the block named id.
func (s *Store) Block(id string) (Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[id]
	if !ok {
		return Block{}, false
	}
	return b.clone(), true
}

// Blocks returns copies of every block in insertion order.
func (s *Store) Blocks() []Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Block, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.blocks[id].clone())
	}
	return out
}

// ─── Connections ───

// AddConnection links from to to. It fails, without touching the store, on
// self-loops, unknown endpoints and an existing (from, to) edge. The
// reverse direction is a different edge and is allowed.
func (s *Store) AddConnection(from, to string) (*Connection, error) {
	if from == to {
		return nil, fmt.Errorf("%w: %s connects to itself", ErrInvalidConnection, from)
	}

	s.mu.Lock()
	if _, ok := s.blocks[from]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w %s", ErrInvalidConnection, ErrUnknownBlock, from)
	}
	if _, ok := s.blocks[to]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w %s", ErrInvalidConnection, ErrUnknownBlock, to)
	}
	for _, c := range s.connections {
		if c.From == from && c.To == to {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %s -> %s already exists", ErrInvalidConnection, from, to)
		}
	}

	c := &Connection{ID: s.newID(), From: from, To: to}
	for s.hasConnectionID(c.ID) {
		c.ID = s.newID()
	}
	s.connections = append(s.connections, c)
	out := *c
	s.mu.Unlock()

	s.notify()
	return &out, nil
}

func (s *Store) hasConnectionID(id string) bool {
	for _, c := range s.connections {
		if c.ID == id {
			return true
		}
	}
	return false
}

// RemoveConnection deletes a connection by id.
func (s *Store) RemoveConnection(id string) bool {
	s.mu.Lock()
	removed := false
	for i, c := range s.connections {
		if c.ID == id {
			s.connections = append(s.connections[:i], s.connections[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		s.unknown("remove_connection", id)
		return false
	}
	s.notify()
	return true
}

// Connections returns copies of every connection in insertion order.
func (s *Store) Connections() []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Connection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, *c)
	}
	return out
}

// ConnectionsOf returns outgoing and incoming connections for a block.
func (s *Store) ConnectionsOf(id string) (outgoing, incoming []Connection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.connections {
		if c.From == id {
			outgoing = append(outgoing, *c)
		}
		if c.To == id {
			incoming = append(incoming, *c)
		}
	}
	return outgoing, incoming
}

// ─── Bulk ───

// ReplaceAll discards the current graph and installs the given one in a
// single step. Blocks without an id or with an unknown kind are dropped, as
// are repeated block ids after the first. Connections that would break an
// invariant are dropped. It returns how many entries were dropped.
func (s *Store) ReplaceAll(name string, blocks []Block, connections []Connection) (droppedBlocks, droppedConnections int) {
	nb := make(map[string]*Block, len(blocks))
	order := make([]string, 0, len(blocks))
	for i := range blocks {
		b := blocks[i].clone()
		if b.ID == "" || !b.Kind.Valid() || nb[b.ID] != nil {
			droppedBlocks++
			continue
		}
		if b.Config == nil {
			b.Config = block.DefaultConfig(b.Kind)
		}
		if b.Participants == nil {
			b.Participants = make([]any, 0)
		}
		b.Position = b.Position.Clamp()
		nb[b.ID] = &b
		order = append(order, b.ID)
	}

	type pair struct{ from, to string }
	seenPair := make(map[pair]bool, len(connections))
	seenID := make(map[string]bool, len(connections))
	nc := make([]*Connection, 0, len(connections))
	for _, c := range connections {
		switch {
		case c.From == c.To,
			nb[c.From] == nil,
			nb[c.To] == nil,
			seenPair[pair{c.From, c.To}],
			c.ID != "" && seenID[c.ID]:
			droppedConnections++
			continue
		}
		if c.ID == "" {
			c.ID = s.newID()
		}
		seenPair[pair{c.From, c.To}] = true
		seenID[c.ID] = true
		cc := c
		nc = append(nc, &cc)
	}

	s.mu.Lock()
	s.name = name
	s.blocks = nb
	s.order = order
	s.connections = nc
	s.mu.Unlock()

	if droppedBlocks > 0 || droppedConnections > 0 {
		s.logger.Debug().
			Int("dropped_blocks", droppedBlocks).
			Int("dropped_connections", droppedConnections).
			Msg("graph: replace dropped invalid entries")
	}
	s.notify()
	return droppedBlocks, droppedConnections
}

// ─── Query ───

// Stats returns summary counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kinds := make(map[block.Kind]int)
	for _, b := range s.blocks {
		kinds[b.Kind]++
	}
	return Stats{
		Blocks:      len(s.blocks),
		Connections: len(s.connections),
		Kinds:       kinds,
	}
}

// ResolveBlock maps a user supplied reference to a block id. It accepts a
// full id, a unique id prefix, or a unique title (case-insensitive).
func (s *Store) ResolveBlock(ref string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnknownBlock)
	}
	if _, ok := s.blocks[ref]; ok {
		return ref, nil
	}

	var prefixed, titled []string
	for _, id := range s.order {
		if strings.HasPrefix(id, ref) {
			prefixed = append(prefixed, id)
		}
		if strings.EqualFold(s.blocks[id].Title, ref) {
			titled = append(titled, id)
		}
	}
	for _, hits := range [][]string{prefixed, titled} {
		switch len(hits) {
		case 0:
			continue
		case 1:
			return hits[0], nil
		default:
			return "", fmt.Errorf("%w: %q matches %d blocks", ErrAmbiguous, ref, len(hits))
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownBlock, ref)
}

// ResolveConnection maps a full id or unique id prefix to a connection id.
func (s *Store) ResolveConnection(ref string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref = strings.TrimSpace(ref)
	var hits []string
	for _, c := range s.connections {
		if c.ID == ref {
			return c.ID, nil
		}
		if ref != "" && strings.HasPrefix(c.ID, ref) {
			hits = append(hits, c.ID)
		}
	}
	switch len(hits) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrUnknownConnection, ref)
	case 1:
		return hits[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d connections", ErrAmbiguous, ref, len(hits))
	}
}
