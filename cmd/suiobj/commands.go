package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"xdao.co/suiobj/archive"
	"xdao.co/suiobj/digest"
	"xdao.co/suiobj/heroes"
	"xdao.co/suiobj/schema"
	"xdao.co/suiobj/suiobj"
)

func (s *session) printJSON(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// openArchive prefers dir over the configured archive. Mirrors only apply to
// the configured one.
func (s *session) openArchive(dir string) (*archive.Archive, error) {
	dirs := s.cfg.ArchiveDirs()
	if dir != "" {
		dirs = []string{dir}
	}
	a, err := archive.OpenDirs(dirs...)
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}
	return a, nil
}

func ownedCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "owned",
		Usage: "List objects owned by an address as NDJSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Required: true, Usage: "owner address"},
			&cli.StringFlag{Name: "type", Usage: "exact Move struct type to match"},
			&cli.StringFlag{Name: "archive-dir", Usage: "archive every response under this directory"},
			&cli.IntFlag{Name: "limit", Usage: "stop after this many objects (0 = all)"},
		},
		Action: func(c *cli.Context) error {
			arch, err := s.openArchive(c.String("archive-dir"))
			if err != nil {
				return err
			}
			limit := c.Int("limit")

			n := 0
			for resp, err := range suiobj.GetOwnedObjects(c.Context, s.node, c.String("owner"), c.String("type")) {
				if err != nil {
					return errors.Wrap(err, "list owned objects")
				}
				if arch != nil {
					id, err := arch.Put(resp)
					if err != nil {
						return errors.Wrap(err, "archive response")
					}
					ev := log.Info().Str("cid", id.String())
					if resp.Data != nil {
						ev = ev.Str("object_id", resp.Data.ObjectID)
					}
					ev.Msg("archived")
				}
				if err := s.printJSON(resp); err != nil {
					return err
				}
				n++
				if limit > 0 && n >= limit {
					break
				}
			}
			return nil
		},
	}
}

func ticketsCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "tickets",
		Usage: "List hero mint tickets owned by an address",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Required: true, Usage: "owner address"},
			&cli.StringFlag{Name: "package", Required: true, Usage: "game package ID"},
			&cli.StringFlag{Name: "character", Usage: "only print the first ticket for this character"},
			&cli.StringFlag{Name: "hero-name", Usage: "with --character, print the mint request for a hero of this name"},
		},
		Action: func(c *cli.Context) error {
			var tickets []heroes.MintTicket
			for t, err := range heroes.Tickets(c.Context, s.node, c.String("owner"), c.String("package")) {
				if err != nil {
					return errors.Wrap(err, "list mint tickets")
				}
				tickets = append(tickets, t)
			}

			if !c.IsSet("character") {
				for _, t := range tickets {
					if err := s.printJSON(t); err != nil {
						return err
					}
				}
				return nil
			}

			ch, err := heroes.ParseCharacter(c.String("character"))
			if err != nil {
				return err
			}
			t, ok := heroes.FindTicket(tickets, ch)
			if !ok {
				return fmt.Errorf("no mint ticket for %s", ch)
			}
			if name := c.String("hero-name"); name != "" {
				req, err := heroes.NewMintRequest(name, t)
				if err != nil {
					return err
				}
				return s.printJSON(req)
			}
			return s.printJSON(t)
		},
	}
}

func objectCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "object",
		Usage: "Fetch one object",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true, Usage: "object ID"},
			&cli.BoolFlag{Name: "owner-required", Usage: "print the Move fields merged with the owner; fail if either is missing"},
		},
		Action: func(c *cli.Context) error {
			resp, err := suiobj.GetObject(c.Context, s.node, c.String("id"))
			if err != nil {
				return errors.Wrap(err, "get object")
			}
			if !c.Bool("owner-required") {
				return s.printJSON(resp)
			}
			owned, err := suiobj.ParseWithOwner(resp, schema.Any())
			if err != nil {
				return err
			}
			return s.printJSON(owned)
		},
	}
}

func ownerCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "owner",
		Usage: "Print the address that owns an object, or \"none\"",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true, Usage: "object ID"},
		},
		Action: func(c *cli.Context) error {
			id := c.String("id")
			resp, err := suiobj.GetObject(c.Context, s.node, id)
			if err != nil {
				return errors.Wrap(err, "get object")
			}
			if resp.Data == nil {
				return fmt.Errorf("object %s not found", id)
			}
			if resp.Data.Owner == nil {
				return fmt.Errorf("object %s: response doesn't contain an owner", id)
			}
			if err := resp.Data.Owner.Validate(); err != nil {
				return errors.Wrapf(err, "object %s: owner", id)
			}
			addr, ok := suiobj.OwnerAddress(*resp.Data.Owner)
			if !ok {
				addr = "none"
			}
			_, err = fmt.Fprintln(s.out, addr)
			return err
		},
	}
}

func cidCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:      "cid",
		Usage:     "Print the CID of a response document (canonical JSON)",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("cid: expected exactly one file")
			}
			b, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}
			canon, err := digest.CanonicalBytes(b)
			if err != nil {
				return errors.Wrap(err, "canonicalize")
			}
			id, err := digest.CID(canon)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(s.out, id.String())
			return err
		},
	}
}

func archiveCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Inspect and move archived responses",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print an archived response",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "archive directory (defaults to config archive_dir)"},
					&cli.StringFlag{Name: "cid", Required: true},
				},
				Action: func(c *cli.Context) error {
					arch, err := s.openArchive(c.String("dir"))
					if err != nil {
						return err
					}
					if arch == nil {
						return errors.New("archive show: no archive directory")
					}
					id, err := cid.Decode(c.String("cid"))
					if err != nil {
						return errors.Wrap(err, "decode cid")
					}
					resp, err := arch.Get(id)
					if err != nil {
						return err
					}
					return s.printJSON(resp)
				},
			},
			{
				Name:  "export",
				Usage: "Write archived responses to a tar bundle",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "archive directory (defaults to config archive_dir)"},
					&cli.StringSliceFlag{Name: "cid", Required: true},
					&cli.StringFlag{Name: "out", Required: true, Usage: "bundle path, or - for stdout"},
				},
				Action: func(c *cli.Context) error {
					arch, err := s.openArchive(c.String("dir"))
					if err != nil {
						return err
					}
					if arch == nil {
						return errors.New("archive export: no archive directory")
					}
					var ids []cid.Cid
					labels := map[string]cid.Cid{}
					for _, v := range c.StringSlice("cid") {
						id, err := cid.Decode(v)
						if err != nil {
							return errors.Wrapf(err, "decode cid %q", v)
						}
						resp, err := arch.Get(id)
						if err != nil {
							return errors.Wrapf(err, "load %s", v)
						}
						if resp.Data != nil {
							labels[resp.Data.ObjectID] = id
						}
						ids = append(ids, id)
					}

					w := s.out
					if out := c.String("out"); out != "-" {
						f, err := os.Create(out)
						if err != nil {
							return err
						}
						defer f.Close()
						w = f
					}
					return archive.Export(w, arch.CAS, ids, labels)
				},
			},
			{
				Name:  "import",
				Usage: "Load a tar bundle into the archive",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "archive directory (defaults to config archive_dir)"},
					&cli.StringFlag{Name: "in", Required: true, Usage: "bundle path"},
				},
				Action: func(c *cli.Context) error {
					arch, err := s.openArchive(c.String("dir"))
					if err != nil {
						return err
					}
					if arch == nil {
						return errors.New("archive import: no archive directory")
					}
					f, err := os.Open(c.String("in"))
					if err != nil {
						return err
					}
					defer f.Close()
					ids, err := archive.Import(f, arch.CAS)
					if err != nil {
						return errors.Wrap(err, "import bundle")
					}
					for _, id := range ids {
						fmt.Fprintln(s.out, id.String())
					}
					return nil
				},
			},
		},
	}
}
