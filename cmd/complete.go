package cmd

import (
	"flag"

	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	accountTypes     = predict.Set{"saving", "checking", "investment", "cash"}
	transactionTypes = predict.Set{"income", "expense"}
	periods          = predict.Set(date.Periods())
)

// flagValues predicts the values of a flag, by command then flag name.
var flagValues = map[string]map[string]complete.Predictor{
	"add-account":  {"type": accountTypes},
	"edit-account": {"type": accountTypes},
	"add-tx":       {"t": transactionTypes},
	"tx":           {"t": transactionTypes, "p": periods},
}

// argValues predicts the arguments of a command.
var argValues = map[string]complete.Predictor{
	"topic":      predict.Set(docs.Names()),
	"import-ofx": predict.Files("*.ofx"),
}

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}, Args: predict.Nothing}
		if p, ok := argValues[cmd.Name()]; ok {
			sub.Args = p
		}
		fs.VisitAll(func(f *flag.Flag) {
			switch p, ok := flagValues[cmd.Name()][f.Name]; {
			case ok:
				sub.Flags[f.Name] = p
			case isBool(f):
				sub.Flags[f.Name] = predict.Nothing
			default:
				sub.Flags[f.Name] = predict.Something
			}
		})
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
