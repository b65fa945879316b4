// Command evals inspects the MCP tool selection evaluation suites.
//
// Usage:
//
//	go run ./cmd/evals -dir ./evals -suite all
//
// It loads the suite JSON files and reports coverage of the analytics and
// trading tools. To score an actual LLM, implement evals.ToolSelector and
// feed it to the Evaluate* functions.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/evals"
)

func main() {
	dir := flag.String("dir", "./evals", "Directory containing eval JSON files")
	suite := flag.String("suite", "all", "Suite to load: tool_selection, confusion_pairs, arguments, or all")
	verbose := flag.Bool("verbose", false, "Show individual test cases")
	flag.Parse()

	fmt.Println("FourMeme Trader MCP Server - Evaluation Framework")
	fmt.Println("=================================================")
	fmt.Println()

	switch *suite {
	case "tool_selection":
		showToolSelection(*dir, *verbose)
	case "confusion_pairs":
		showConfusionPairs(*dir, *verbose)
	case "arguments":
		showArguments(*dir, *verbose)
	case "all":
		showAll(*dir, *verbose)
	default:
		fmt.Fprintf(os.Stderr, "Unknown suite: %s\n", *suite)
		os.Exit(1)
	}
}

func showToolSelection(dir string, verbose bool) {
	suite, err := evals.LoadToolSelectionSuite(filepath.Join(dir, "tool_selection.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tool selection suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tool Selection Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("%s\n", suite.Description)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	categories := make(map[string]int)
	tools := make(map[string]int)
	for _, test := range suite.Tests {
		categories[test.Category]++
		tools[test.ExpectedTool]++
	}

	fmt.Println("Tests by Category:")
	printCounts(categories, 15)
	fmt.Println()

	fmt.Println("Tests by Tool:")
	printCounts(tools, 35)

	if verbose {
		fmt.Println("\nTest Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    -> %s\n", test.ExpectedTool)
			if len(test.NotTools) > 0 {
				fmt.Printf("    never: %v\n", test.NotTools)
			}
		}
	}
	fmt.Println()
}

func showConfusionPairs(dir string, verbose bool) {
	suite, err := evals.LoadConfusionPairSuite(filepath.Join(dir, "confusion_pairs.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading confusion pairs suite: %v\n", err)
		os.Exit(1)
	}

	totalTests := 0
	for _, pair := range suite.Pairs {
		totalTests += len(pair.Tests)
	}

	fmt.Printf("Confusion Pairs Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Pairs: %d, Tests: %d\n", len(suite.Pairs), totalTests)

	for _, pair := range suite.Pairs {
		fmt.Printf("\n  %s:\n", pair.ID)
		fmt.Printf("    Tools: %v\n", pair.Tools)
		fmt.Printf("    Rule: %s\n", pair.Disambiguation)
		fmt.Printf("    Tests: %d\n", len(pair.Tests))

		if verbose {
			for _, test := range pair.Tests {
				fmt.Printf("      %q\n", test.Input)
				fmt.Printf("        -> %s (%s)\n", test.Expected, test.Reason)
			}
		}
	}
	fmt.Println()
}

func showArguments(dir string, verbose bool) {
	suite, err := evals.LoadArgumentSuite(filepath.Join(dir, "argument_correctness.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading argument suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Argument Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	tools := make(map[string]int)
	for _, test := range suite.Tests {
		tools[test.Tool]++
	}

	fmt.Println("Tests by Tool:")
	printCounts(tools, 35)
	fmt.Println()

	fmt.Println("Validation Rules:")
	fmt.Printf("  Address Format:    %s\n", suite.ValidationRules.AddressFormat)
	fmt.Printf("  Amount Handling:   %s\n", suite.ValidationRules.AmountHandling)
	fmt.Printf("  Slippage Handling: %s\n", suite.ValidationRules.SlippageHandling)
	fmt.Printf("  Limit Handling:    %s\n", suite.ValidationRules.LimitHandling)

	if verbose {
		fmt.Println("\nTest Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    Tool: %s\n", test.Tool)
			fmt.Printf("    Required: %v\n", test.RequiredArgs)
			fmt.Printf("    Expected: %v\n", test.ExpectedArgs)
			if len(test.ForbiddenArgs) > 0 {
				fmt.Printf("    Forbidden: %v\n", test.ForbiddenArgs)
			}
			if test.ArgNotes != "" {
				fmt.Printf("    Notes: %s\n", test.ArgNotes)
			}
		}
	}
	fmt.Println()
}

func showAll(dir string, verbose bool) {
	toolSelection, confusionPairs, arguments, err := evals.LoadAllEvals(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading evals: %v\n", err)
		os.Exit(1)
	}

	confusionTests := 0
	for _, pair := range confusionPairs.Pairs {
		confusionTests += len(pair.Tests)
	}
	total := len(toolSelection.Tests) + confusionTests + len(arguments.Tests)

	fmt.Printf("Loaded all evaluation suites from: %s\n\n", dir)
	fmt.Println("Summary:")
	fmt.Println("--------")
	fmt.Printf("Tool Selection Tests:   %d\n", len(toolSelection.Tests))
	fmt.Printf("Confusion Pair Tests:   %d (across %d pairs)\n", confusionTests, len(confusionPairs.Pairs))
	fmt.Printf("Argument Tests:         %d\n", len(arguments.Tests))
	fmt.Printf("Total Evaluation Tests: %d\n\n", total)

	covered := make(map[string]bool)
	for _, test := range toolSelection.Tests {
		covered[test.ExpectedTool] = true
	}
	for _, pair := range confusionPairs.Pairs {
		for _, tool := range pair.Tools {
			covered[tool] = true
		}
	}
	for _, test := range arguments.Tests {
		covered[test.Tool] = true
	}

	fmt.Printf("Tool Coverage: %d unique tools tested\n", len(covered))

	if verbose {
		names := make([]string, 0, len(covered))
		for tool := range covered {
			names = append(names, tool)
		}
		sort.Strings(names)
		fmt.Println("\nCovered Tools:")
		for _, tool := range names {
			fmt.Printf("  %s\n", tool)
		}
	}

	fmt.Println()
	fmt.Println("To score an LLM, implement the evals.ToolSelector interface and")
	fmt.Println("run EvaluateToolSelection(), EvaluateConfusionPairs(), EvaluateArguments()")
}

func printCounts(counts map[string]int, width int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-*s: %d\n", width, k, counts[k])
	}
}
