// Package heroes holds the on-chain shapes of the hero-minting game: the
// playable characters and the mint tickets a player must own to mint one.
package heroes

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"xdao.co/suiobj/schema"
	"xdao.co/suiobj/suiobj"
)

// Character is the on-chain character index carried by a mint ticket.
type Character uint8

const (
	Fighter Character = iota
	Rogue
	Warrior

	numCharacters = 3
)

var characterNames = [numCharacters]string{"Fighter", "Rogue", "Warrior"}

func (c Character) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Character(%d)", uint8(c))
	}
	return characterNames[c]
}

func (c Character) Valid() bool { return c < numCharacters }

// Next and Prev cycle through the characters.
func (c Character) Next() Character { return (c + 1) % numCharacters }
func (c Character) Prev() Character { return (c + numCharacters - 1) % numCharacters }

// ParseCharacter accepts a character name (case-insensitive) or index.
func ParseCharacter(s string) (Character, error) {
	for i, name := range characterNames {
		if strings.EqualFold(s, name) || s == fmt.Sprint(i) {
			return Character(i), nil
		}
	}
	return 0, fmt.Errorf("heroes: unknown character %q", s)
}

// Attributes are the base stats a hero is minted with.
type Attributes struct {
	Damage  uint8 `json:"damage"`
	Speed   uint8 `json:"speed"`
	Defense uint8 `json:"defense"`
}

var baseAttributes = [numCharacters]Attributes{
	Fighter: {Damage: 3, Speed: 4, Defense: 3},
	Rogue:   {Damage: 2, Speed: 7, Defense: 1},
	Warrior: {Damage: 5, Speed: 1, Defense: 4},
}

// Attributes returns the base stats of c; the zero value if c is not valid.
func (c Character) Attributes() Attributes {
	if !c.Valid() {
		return Attributes{}
	}
	return baseAttributes[c]
}

// CharacterSchema accepts a JSON integer naming a known character.
var CharacterSchema schema.Schema[Character] = schema.Func[Character](func(raw any, path string) (Character, error) {
	n, err := schema.Uint8().Validate(raw, path)
	if err != nil {
		return 0, err
	}
	c := Character(n)
	if !c.Valid() {
		return 0, &schema.Error{Path: path, RuleID: schema.RuleInteger, Message: fmt.Sprintf("unknown character %d", n)}
	}
	return c, nil
})

// MintTicket is an owned object that entitles its owner to mint one hero of
// the given character.
type MintTicket struct {
	ID        suiobj.ObjectID `json:"id"`
	Character Character       `json:"character"`
}

var MintTicketSchema = schema.Object(
	schema.Required("id", suiobj.ObjectIDSchema, func(t *MintTicket, v suiobj.ObjectID) { t.ID = v }),
	schema.Required("character", CharacterSchema, func(t *MintTicket, v Character) { t.Character = v }),
)

// MintTicketMoveType is the fully qualified Move type of mint tickets issued
// by the game package published at pkg.
func MintTicketMoveType(pkg string) string {
	return pkg + "::hero::MintTicket"
}

// Tickets enumerates and parses the mint tickets owned by owner.
func Tickets(ctx context.Context, f suiobj.OwnedObjectsFetcher, owner, pkg string) iter.Seq2[MintTicket, error] {
	return suiobj.ParsedOwnedObjects(ctx, f, owner, MintTicketMoveType(pkg), MintTicketSchema)
}

// FindTicket returns the first ticket for character c.
func FindTicket(tickets []MintTicket, c Character) (MintTicket, bool) {
	for _, t := range tickets {
		if t.Character == c {
			return t, true
		}
	}
	return MintTicket{}, false
}

// MintRequest is the input for minting a hero from a ticket.
type MintRequest struct {
	Name     string `json:"name"`
	Damage   uint8  `json:"damage"`
	Speed    uint8  `json:"speed"`
	Defense  uint8  `json:"defense"`
	TicketID string `json:"ticketId"`
}

// NewMintRequest fills in the base attributes of the ticket's character.
func NewMintRequest(name string, t MintTicket) (MintRequest, error) {
	if strings.TrimSpace(name) == "" {
		return MintRequest{}, errors.New("heroes: hero name is required")
	}
	if !t.Character.Valid() {
		return MintRequest{}, fmt.Errorf("heroes: ticket %s has unknown character %d", t.ID.ID, uint8(t.Character))
	}
	a := t.Character.Attributes()
	return MintRequest{
		Name:     name,
		Damage:   a.Damage,
		Speed:    a.Speed,
		Defense:  a.Defense,
		TicketID: t.ID.ID,
	}, nil
}
