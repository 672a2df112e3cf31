package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mtarnawa/gwentish/internal/ai"
	"github.com/mtarnawa/gwentish/internal/catalog"
	"github.com/mtarnawa/gwentish/internal/game"
	"github.com/mtarnawa/gwentish/internal/log"
	gwnet "github.com/mtarnawa/gwentish/internal/net"
)

func main() {
	catalogPath := flag.String("catalog", "data/catalog.yaml", "path to catalog YAML file")
	deckName := flag.String("deck", "", "prebuilt deck name (default: first deck)")
	difficultyStr := flag.String("difficulty", "normal", "opponent difficulty: easy, normal, hard, expert")
	name := flag.String("name", "Player", "your display name")
	seed := flag.Int64("seed", 0, "match RNG seed (0 = random)")
	flag.Parse()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		fail("load catalog: %v", err)
	}

	deck, ok := cat.DeckByName(*deckName)
	if !ok {
		decks := cat.Decks()
		if *deckName != "" || len(decks) == 0 {
			fail("unknown deck %q (have: %s)", *deckName, deckNames(cat))
		}
		deck = decks[0]
	}

	difficulty, err := ai.ParseDifficulty(*difficultyStr)
	if err != nil {
		fail("%v", err)
	}

	match, err := gwnet.NewBotMatch("cli", gwnet.MatchConfig{
		PlayerID:   "you",
		PlayerName: *name,
		Deck:       deck.CardIDs,
		Leader:     deck.Leader,
		BotDeck:    deck.CardIDs,
		BotLeader:  deck.Leader,
		Difficulty: difficulty,
		Catalog:    cat,
		Seed:       *seed,
	})
	if err != nil {
		fail("start match: %v", err)
	}

	fmt.Printf("Playing %q against a %s opponent. Type 'help' for commands.\n\n", deck.Name, difficulty)

	lastSeq := printEvents(match, 0)
	printBoard(match)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var opErr error
		switch fields[0] {
		case "help", "h":
			printHelp()
			continue
		case "hand":
			printHand(match)
			continue
		case "board", "b":
			printBoard(match)
			continue
		case "play", "p":
			if len(fields) != 3 {
				fmt.Println("usage: play <card-id> <melee|ranged|siege>")
				continue
			}
			var row game.Row
			row, opErr = game.ParseRow(fields[2])
			if opErr == nil {
				opErr = match.PlayCard("you", fields[1], row)
			}
		case "pass":
			opErr = match.Pass("you")
		case "leader":
			opErr = match.UseLeaderAbility("you")
		case "quit", "q":
			if !match.Ended() {
				_ = match.Forfeit("you", "quit")
				printEvents(match, lastSeq)
			}
			return
		default:
			fmt.Printf("unknown command %q (try 'help')\n", fields[0])
			continue
		}

		if opErr != nil {
			fmt.Printf("rejected: %v\n", opErr)
			continue
		}

		lastSeq = printEvents(match, lastSeq)
		if match.Ended() {
			snap, _ := match.Snapshot("you")
			fmt.Printf("\n%s\n", snap.Result)
			return
		}
		printBoard(match)
	}
}

func printEvents(match *gwnet.Match, sinceSeq int) int {
	for _, e := range match.EventsSince(sinceSeq) {
		sinceSeq = e.Seq
		fmt.Println(log.FormatEvent(e))
	}
	return sinceSeq
}

func printBoard(match *gwnet.Match) {
	snap, err := match.Snapshot("you")
	if err != nil {
		fmt.Printf("state: %v\n", err)
		return
	}

	fmt.Printf("\nRound %d  you %d : %d them  (rounds %d-%d)",
		snap.Round, snap.You.Score, snap.Opponent.Score,
		snap.You.RoundsWon, snap.Opponent.RoundsWon)
	if len(snap.Weather) > 0 {
		fmt.Printf("  weather: %s", strings.Join(snap.Weather, ", "))
	}
	fmt.Println()

	for i := len(snap.Opponent.Rows) - 1; i >= 0; i-- {
		printRow("  them", snap.Opponent.Rows[i])
	}
	for _, row := range snap.You.Rows {
		printRow("  you ", row)
	}

	if snap.IsYourTurn {
		fmt.Println("your turn")
	} else if snap.You.Passed {
		fmt.Println("you have passed")
	} else {
		fmt.Println("waiting for opponent")
	}
}

func printRow(side string, row game.RowView) {
	var cards []string
	for _, c := range row.Cards {
		cards = append(cards, fmt.Sprintf("%s(%d)", c.Name, c.Power))
	}
	marker := ""
	if row.Weather {
		marker = " *"
	}
	fmt.Printf("%s %-6s %2d%s | %s\n", side, row.Row, row.Total, marker, strings.Join(cards, " "))
}

func printHand(match *gwnet.Match) {
	snap, err := match.Snapshot("you")
	if err != nil {
		fmt.Printf("state: %v\n", err)
		return
	}
	for _, c := range snap.You.Hand {
		fmt.Printf("  %-20s %-8s %-10s power %d\n", c.ID, c.Type, c.Rarity, c.BasePower)
	}
	if snap.You.Leader != "" && !snap.You.LeaderUsed {
		fmt.Printf("  leader: %s (use with 'leader')\n", snap.You.Leader)
	}
}

func printHelp() {
	fmt.Println("  play <card-id> <row>  play a card (rows: melee, ranged, siege)")
	fmt.Println("  pass                  pass for the rest of the round")
	fmt.Println("  leader                use your leader ability")
	fmt.Println("  hand                  show your hand")
	fmt.Println("  board                 show the board")
	fmt.Println("  quit                  forfeit and exit")
}

func deckNames(cat *catalog.Memory) string {
	var names []string
	for _, d := range cat.Decks() {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
