// Command classify scores text against the trained artifacts without
// starting the web UI. Reads text from arguments or stdin; exits 1 on a
// FAKE verdict so it can gate scripts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/M0105R/FakeNewsDetector/internal/classifier"
)

func main() {
	vectorizerPath := flag.String("vectorizer", "model/vectorizer.json", "path to the vectorizer artifact")
	modelPath := flag.String("model", "model/model.json", "path to the classifier artifact")
	threshold := flag.Float64("threshold", classifier.DefaultThreshold, "minimum REAL probability for a REAL verdict")
	showProbs := flag.Bool("probs", false, "print per-class probabilities")
	flag.Parse()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("read stdin: %v", err)
		}
		text = strings.TrimSpace(string(data))
	}

	if len(text) < 20 {
		fatal("provide at least 20 characters of text to classify")
	}

	clf, err := classifier.Load(*vectorizerPath, *modelPath)
	if err != nil {
		fatal("load artifacts: %v", err)
	}

	result, err := clf.Classify(text, *threshold)
	if err != nil {
		fatal("classify: %v", err)
	}

	verdict := color.New(color.FgGreen, color.Bold)
	if result.Label == classifier.LabelFake {
		verdict = color.New(color.FgRed, color.Bold)
	}
	verdict.Printf("%s", result.Label)
	fmt.Printf(" — confidence %.2f (threshold %.2f)\n", result.Confidence, *threshold)

	if *showProbs {
		classes := make([]string, 0, len(result.Probabilities))
		for class := range result.Probabilities {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			fmt.Printf("  %-10s %.4f\n", class, result.Probabilities[class])
		}
	}

	if result.Label == classifier.LabelFake {
		os.Exit(1)
	}
}

func fatal(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "classify: "+format+"\n", args...)
	os.Exit(2)
}
