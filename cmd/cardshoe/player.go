package main

// PlayerCmd groups the player commands
type PlayerCmd struct {
	Create PlayerCreateCmd `cmd:"" help:"Create a player"`
	List   PlayerListCmd   `cmd:"" help:"List players"`
	Show   PlayerShowCmd   `cmd:"" help:"Show a player and their hand"`
	Delete PlayerDeleteCmd `cmd:"" help:"Delete a player, returning their hand to the shoe"`
	Cards  PlayerCardsCmd  `cmd:"" help:"List the cards in a player's hand"`
	Total  PlayerTotalCmd  `cmd:"" help:"Print the value of a player's hand"`
	Clear  PlayerClearCmd  `cmd:"" help:"Return a player's cards to the shoe"`
}

type PlayerCreateCmd struct {
	Name string `arg:"" help:"Player name"`
}

func (c *PlayerCreateCmd) Run(app *App) error {
	p, err := app.services.Players.CreatePlayer(c.Name)
	if err != nil {
		return err
	}
	app.out.Player(p)
	return app.save()
}

type PlayerListCmd struct{}

func (c *PlayerListCmd) Run(app *App) error {
	app.out.Players(app.services.Players.ListPlayers())
	return nil
}

type PlayerShowCmd struct {
	ID string `arg:"" help:"Player ID"`
}

func (c *PlayerShowCmd) Run(app *App) error {
	p, err := app.services.Players.FindPlayer(c.ID)
	if err != nil {
		return err
	}
	app.out.Player(p)
	return nil
}

type PlayerDeleteCmd struct {
	ID string `arg:"" help:"Player ID"`
}

func (c *PlayerDeleteCmd) Run(app *App) error {
	if err := app.services.Players.DeletePlayer(c.ID); err != nil {
		return err
	}
	app.out.Message("Deleted player %s", c.ID)
	return app.save()
}

type PlayerCardsCmd struct {
	ID string `arg:"" help:"Player ID"`
}

func (c *PlayerCardsCmd) Run(app *App) error {
	cards, err := app.services.Players.PlayerCards(c.ID)
	if err != nil {
		return err
	}
	app.out.Cards(cards)
	return nil
}

type PlayerTotalCmd struct {
	ID string `arg:"" help:"Player ID"`
}

func (c *PlayerTotalCmd) Run(app *App) error {
	total, err := app.services.Players.PlayerTotalValue(c.ID)
	if err != nil {
		return err
	}
	app.out.Message("%d", total)
	return nil
}

type PlayerClearCmd struct {
	ID string `arg:"" help:"Player ID"`
}

func (c *PlayerClearCmd) Run(app *App) error {
	p, err := app.services.Players.ClearPlayerCards(c.ID)
	if err != nil {
		return err
	}
	app.out.Player(p)
	return app.save()
}
