package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/crossover-trader/internal/replay"
	"github.com/urfave/cli/v3"
)

func replayAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument")
	}

	rules, err := replay.ParseRuleSet(cmd.String("rules"))
	if err != nil {
		return err
	}

	config := replay.DefaultConfig()
	config.Rules = rules
	config.Params.FastSpan = cmd.Int("ema-fast")
	config.Params.SlowSpan = cmd.Int("ema-slow")
	config.Params.RSIPeriod = cmd.Int("rsi-period")
	config.RSIOverbought = cmd.Float("rsi-overbought")
	config.RSIOversold = cmd.Float("rsi-oversold")

	closes, err := replay.LoadCloses(cmd.Args().First())
	if err != nil {
		return err
	}

	operations, err := replay.Run(closes, config)
	if err != nil {
		return err
	}

	for _, op := range operations {
		fmt.Println(op)
	}

	if output := cmd.String("output"); output != "" {
		return replay.WriteOperations(output, operations)
	}

	return nil
}

func main() {
	defaults := replay.DefaultConfig()

	cmd := &cli.Command{
		Name:      "replay",
		Usage:     "Print the EMA/RSI signals found in a CSV of closes",
		ArgsUsage: "<file.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Rule set to apply: ema, rsi or both",
				Value:   string(replay.RuleSetBoth),
			},
			&cli.IntFlag{
				Name:  "ema-fast",
				Usage: "Fast EMA span",
				Value: defaults.Params.FastSpan,
			},
			&cli.IntFlag{
				Name:  "ema-slow",
				Usage: "Slow EMA span",
				Value: defaults.Params.SlowSpan,
			},
			&cli.IntFlag{
				Name:  "rsi-period",
				Usage: "RSI period",
				Value: defaults.Params.RSIPeriod,
			},
			&cli.FloatFlag{
				Name:  "rsi-overbought",
				Usage: "RSI overbought level",
				Value: defaults.RSIOverbought,
			},
			&cli.FloatFlag{
				Name:  "rsi-oversold",
				Usage: "RSI oversold level",
				Value: defaults.RSIOversold,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also write the operations to this CSV file",
			},
		},
		Action: replayAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
