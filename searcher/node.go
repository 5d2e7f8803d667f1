package searcher

import (
	"math"
	"othello/game"

	"golang.org/x/exp/rand"
)

// Node is one position in the search tree. A node owns its board and its
// children; parent is only followed upward during backpropagation.
type Node struct {
	move        game.Bitboard
	board       *game.Board
	parent      *Node
	children    []*Node
	expanded    bool
	visits      int
	value       float64
	perspective game.Color
}

// NewNode wraps board, reached from parent by move. Every rollout below the
// node is scored for perspective.
func NewNode(move game.Bitboard, board *game.Board, parent *Node, perspective game.Color) *Node {
	return &Node{
		move:        move,
		board:       board,
		parent:      parent,
		perspective: perspective,
	}
}

// Expand creates one child per legal move, lowest square first. It only runs
// once per node.
func (n *Node) Expand() {
	if n.expanded {
		return
	}
	n.expanded = true

	legal := n.board.LegalMoves()
	n.children = make([]*Node, 0, legal.Count())
	for legal != 0 {
		move := legal & -legal
		legal &^= move
		board := n.board.Clone()
		if err := board.Apply(move); err != nil {
			panic(err)
		}
		n.children = append(n.children, NewNode(move, board, n, n.perspective))
	}
}

// Select walks down the tree and returns the node to simulate from, or nil
// when this node's own board is terminal. It never changes statistics.
func (n *Node) Select(c float64) *Node {
	if n.board.IsTerminal() {
		return nil
	}
	node := n
	for {
		node.Expand()
		child := node.pickChild(c)
		if child.visits == 0 || child.board.IsTerminal() {
			return child
		}
		node = child
	}
}

func (n *Node) pickChild(c float64) *Node {
	// Every child is tried once before UCT is used
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
	}

	// Values are stored for the root player, the opponent picks the minimum
	sign := 1.0
	if n.board.ActiveColor() != n.perspective {
		sign = -1.0
	}

	policy := newUCT(c, n.visits)
	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := policy.evaluate(sign*child.value, float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// Simulate plays uniformly random moves on a copy of the board until the game
// ends and scores the result for the root player.
func (n *Node) Simulate(r *rand.Rand) float64 {
	board := n.board.Clone()
	for legal := board.LegalMoves(); legal != 0; legal = board.LegalMoves() {
		move := legal.Nth(r.Intn(legal.Count()))
		if err := board.Apply(move); err != nil {
			panic(err)
		}
	}
	return outcome(board, n.perspective)
}

func outcome(board *game.Board, perspective game.Color) float64 {
	winner, ok := board.Winner()
	switch {
	case !ok:
		return Draw
	case winner == perspective:
		return Win
	}
	return Loss
}

// Backpropagate adds result to this node and each of its ancestors.
func (n *Node) Backpropagate(result float64) {
	for node := n; node != nil; node = node.parent {
		node.value += result
		node.visits++
	}
}

// BestMove returns the move of the most visited child, the first one on ties,
// or NoMove when the node has no children.
func (n *Node) BestMove() game.Bitboard {
	best := game.NoMove
	maxVisits := -1
	for _, child := range n.children {
		if child.visits > maxVisits {
			maxVisits = child.visits
			best = child.move
		}
	}
	return best
}

// Policy maps each child's move to its visit count.
func (n *Node) Policy() map[game.Bitboard]int {
	policy := make(map[game.Bitboard]int, len(n.children))
	for _, child := range n.children {
		policy[child.move] = child.visits
	}
	return policy
}

func (n *Node) Move() game.Bitboard {
	return n.move
}

func (n *Node) Board() *game.Board {
	return n.board
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Value() float64 {
	return n.value
}

func (n *Node) Perspective() game.Color {
	return n.perspective
}
