// Package game implements the shoe, players and game orchestration of the
// card dealing model.
//
// A Game owns one GameDeck (the shoe) and references any number of Players.
// Decks are poured into the shoe with AddDeck, and cards move from the shoe
// to a hand with DealCards and back with RemovePlayer:
//
//	g := game.NewGame("friday")
//	g.AddDeck(deck.NewDeck("red"))
//	g.ShuffleGameDeck()
//
//	alice := game.NewPlayer("alice")
//	g.AddPlayer(alice)
//	n, err := g.DealCards(alice, 5) // n < 5 only if the shoe ran out
//
// # Deterministic Testing
//
// Shuffling draws from an injectable RandSource. Pass a seeded source to make
// deal order reproducible:
//
//	g := game.NewGame("test", game.WithRand(randutil.New(42)))
//
// # Concurrency
//
// None of the types lock. A Game and its shoe must be mutated by one
// goroutine at a time; internal/service serializes access per game.
package game
