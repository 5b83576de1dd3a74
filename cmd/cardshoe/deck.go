package main

// DeckCmd groups the deck template commands
type DeckCmd struct {
	Create DeckCreateCmd `cmd:"" help:"Create a standard 52-card deck"`
	List   DeckListCmd   `cmd:"" help:"List decks"`
	Show   DeckShowCmd   `cmd:"" help:"Show a deck"`
	Delete DeckDeleteCmd `cmd:"" help:"Delete a deck"`
	Reinit DeckReinitCmd `cmd:"" help:"Replace a deck's cards with 52 new ones"`
}

type DeckCreateCmd struct {
	Name string `arg:"" help:"Deck name"`
}

func (c *DeckCreateCmd) Run(app *App) error {
	d, err := app.services.Decks.CreateDeck(c.Name)
	if err != nil {
		return err
	}
	app.out.Deck(d)
	return app.save()
}

type DeckListCmd struct{}

func (c *DeckListCmd) Run(app *App) error {
	app.out.Decks(app.services.Decks.ListDecks())
	return nil
}

type DeckShowCmd struct {
	ID string `arg:"" help:"Deck ID"`
}

func (c *DeckShowCmd) Run(app *App) error {
	d, err := app.services.Decks.FindDeck(c.ID)
	if err != nil {
		return err
	}
	app.out.Deck(d)
	return nil
}

type DeckDeleteCmd struct {
	ID string `arg:"" help:"Deck ID"`
}

func (c *DeckDeleteCmd) Run(app *App) error {
	if err := app.services.Decks.DeleteDeck(c.ID); err != nil {
		return err
	}
	app.out.Message("Deleted deck %s", c.ID)
	return app.save()
}

type DeckReinitCmd struct {
	ID string `arg:"" help:"Deck ID"`
}

func (c *DeckReinitCmd) Run(app *App) error {
	d, err := app.services.Decks.ReinitializeDeck(c.ID)
	if err != nil {
		return err
	}
	app.out.Deck(d)
	return app.save()
}
