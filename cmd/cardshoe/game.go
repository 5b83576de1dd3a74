package main

// GameCmd groups the game commands
type GameCmd struct {
	Create       GameCreateCmd       `cmd:"" help:"Create a game with an empty shoe"`
	List         GameListCmd         `cmd:"" help:"List games"`
	Show         GameShowCmd         `cmd:"" help:"Show a game summary"`
	Delete       GameDeleteCmd       `cmd:"" help:"Delete a game, releasing every hand"`
	AddDeck      GameAddDeckCmd      `cmd:"" name:"add-deck" help:"Add a deck's cards to the shoe"`
	AddPlayer    GameAddPlayerCmd    `cmd:"" name:"add-player" help:"Seat a player in the game"`
	RemovePlayer GameRemovePlayerCmd `cmd:"" name:"remove-player" help:"Remove a player, returning their hand to the shoe"`
	Deal         GameDealCmd         `cmd:"" help:"Deal cards to a player"`
	Shuffle      GameShuffleCmd      `cmd:"" help:"Shuffle the shoe"`
	Players      GamePlayersCmd      `cmd:"" help:"List the game's players"`
	Scores       GameScoresCmd       `cmd:"" help:"Rank players by hand value"`
	Suits        GameSuitsCmd        `cmd:"" help:"Count undealt cards per suit"`
	Ranks        GameRanksCmd        `cmd:"" help:"Count undealt cards per suit and rank"`
	Remaining    GameRemainingCmd    `cmd:"" help:"List undealt cards by suit, highest rank first"`
}

type GameCreateCmd struct {
	Name string `arg:"" help:"Game name"`
}

func (c *GameCreateCmd) Run(app *App) error {
	g, err := app.services.Games.CreateGame(c.Name)
	if err != nil {
		return err
	}
	app.out.Game(g)
	return app.save()
}

type GameListCmd struct{}

func (c *GameListCmd) Run(app *App) error {
	app.out.Games(app.services.Games.ListGames())
	return nil
}

type GameShowCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameShowCmd) Run(app *App) error {
	g, err := app.services.Games.FindGame(c.ID)
	if err != nil {
		return err
	}
	app.out.Game(g)
	return nil
}

type GameDeleteCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameDeleteCmd) Run(app *App) error {
	if err := app.services.Games.DeleteGame(c.ID); err != nil {
		return err
	}
	app.out.Message("Deleted game %s", c.ID)
	return app.save()
}

type GameAddDeckCmd struct {
	Game string `arg:"" help:"Game ID"`
	Deck string `arg:"" help:"Deck ID"`
}

func (c *GameAddDeckCmd) Run(app *App) error {
	g, err := app.services.Games.AddDeckToGame(c.Game, c.Deck)
	if err != nil {
		return err
	}
	app.out.Game(g)
	return app.save()
}

type GameAddPlayerCmd struct {
	Game   string `arg:"" help:"Game ID"`
	Player string `arg:"" help:"Player ID"`
}

func (c *GameAddPlayerCmd) Run(app *App) error {
	g, err := app.services.Games.AddPlayerToGame(c.Game, c.Player)
	if err != nil {
		return err
	}
	app.out.Game(g)
	return app.save()
}

type GameRemovePlayerCmd struct {
	Game   string `arg:"" help:"Game ID"`
	Player string `arg:"" help:"Player ID"`
}

func (c *GameRemovePlayerCmd) Run(app *App) error {
	g, err := app.services.Games.RemovePlayerFromGame(c.Game, c.Player)
	if err != nil {
		return err
	}
	app.out.Game(g)
	return app.save()
}

type GameDealCmd struct {
	Game   string `arg:"" help:"Game ID"`
	Player string `arg:"" help:"Player ID"`
	Count  int    `short:"n" default:"1" help:"Number of cards to deal"`
}

func (c *GameDealCmd) Run(app *App) error {
	res, err := app.services.Games.DealCardsToPlayer(c.Game, c.Player, c.Count)
	if err != nil {
		return err
	}
	app.out.Deal(res)
	return app.save()
}

type GameShuffleCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameShuffleCmd) Run(app *App) error {
	g, err := app.services.Games.ShuffleGameDeck(c.ID)
	if err != nil {
		return err
	}
	app.out.Message("Shuffled %s (%d undealt)", g.Name, g.UndealtCount)
	return app.save()
}

type GamePlayersCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GamePlayersCmd) Run(app *App) error {
	players, err := app.services.Games.GamePlayers(c.ID)
	if err != nil {
		return err
	}
	app.out.Players(players)
	return nil
}

type GameScoresCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameScoresCmd) Run(app *App) error {
	scores, err := app.services.Games.PlayersWithTotalValues(c.ID)
	if err != nil {
		return err
	}
	app.out.Scores(scores)
	return nil
}

type GameSuitsCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameSuitsCmd) Run(app *App) error {
	counts, err := app.services.Games.UndealtCardsBySuit(c.ID)
	if err != nil {
		return err
	}
	app.out.SuitCounts(counts)
	return nil
}

type GameRanksCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameRanksCmd) Run(app *App) error {
	counts, err := app.services.Games.UndealtCardsBySuitAndRank(c.ID)
	if err != nil {
		return err
	}
	app.out.RankCounts(counts)
	return nil
}

type GameRemainingCmd struct {
	ID string `arg:"" help:"Game ID"`
}

func (c *GameRemainingCmd) Run(app *App) error {
	cards, err := app.services.Games.RemainingCards(c.ID)
	if err != nil {
		return err
	}
	app.out.Cards(cards)
	if len(cards) > 0 {
		app.out.Message("%d card(s) remaining", len(cards))
	}
	return nil
}
