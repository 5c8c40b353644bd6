package cmd

import (
	"flag"
	"slices"

	"github.com/etnz/kitty/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// ledgerFiles predicts every file the ledger flag can read.
var ledgerFiles = complete.PredictFunc(func(prefix string) []string {
	var files []string
	for _, pattern := range []string{"*.jsonl", "*.json", "*.csv", "*.xlsx", "*.xlsm"} {
		files = append(files, predict.Files(pattern).Predict(prefix)...)
	}
	// directories are predicted once per pattern.
	slices.Sort(files)
	return slices.Compact(files)
})

// flagPredictors are the value predictors of flags that have a known set of
// values. Other flags predict anything, boolean flags nothing.
var flagPredictors = map[string]complete.Predictor{
	"ledger":  ledgerFiles,
	"mapping": predict.Files("*.json"),
	"by":      predict.Set{"member", "group"},
	"o":       predict.Files("*"),
}

// Completion builds the shell completion tree of the application from the
// global flags and the flags of every command.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
	}
	root.Sub["topic"].Args = predict.Set(topics())
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}

func topics() []string {
	names, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(names, docs.Readme, "*")
}
