// Command mothercore runs a minimal REPL over the personality core: plain
// input goes through Act, slash commands expose planning, memory recall and
// the corrigibility controls. The REPL is a thin loop; all behavior lives in
// the library.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mothercore/mothercore"
	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/logging"
	"github.com/mothercore/mothercore/memory"
)

var (
	coreName      string
	memoryDir     string
	dbPath        string
	constitution  string
	riskThreshold float64
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "mothercore",
	Short: "A corrigible personal-assistant personality core",
	Long: "mothercore classifies input, checks it against a small constitution and a\n" +
		"risk heuristic, dispatches skills or proposes reversible-first plans, and\n" +
		"keeps an append-only memory of every interaction.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&coreName, "name", "n", "Oracle-Mother", "Core display name")
	rootCmd.Flags().StringVarP(&memoryDir, "memory-dir", "m", "", "Memory directory (default: ~/.mothercore)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Use a SQLite memory store at this path instead of JSONL files")
	rootCmd.Flags().StringVar(&constitution, "constitution", "", "Path to a YAML or JSON constitution file")
	rootCmd.Flags().Float64Var(&riskThreshold, "risk-threshold", 0.6, "Risk score forcing oversight")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline decisions to stderr")
}

const banner = `%s
Type:
  /plan <goal>     propose a reversible-first plan
  /approve <token> confirm the last plan, clearing its oversight steps
  /mem <query>     search interaction memory
  /pause /resume   control the core
  /shutdown        graceful, value-neutral shutdown
  Ctrl+D           exit
`

// lastPlan holds the most recent /plan result so /approve can confirm it.
var lastPlan core.Plan

func newCore() (*mothercore.MotherCore, error) {
	return mothercore.New(coreName, func(o *mothercore.Options) {
		o.MemoryLocation = memoryDir
		o.ConstitutionPath = constitution
		o.RiskThreshold = riskThreshold
		if verbose {
			o.Logger = logging.NewSlogLogger(logging.LogLevelDebug, "text", os.Stderr)
		}
		if dbPath != "" {
			store, err := memory.NewSQLiteStore(dbPath)
			if err == nil {
				o.Store = store
			} else {
				fmt.Fprintf(os.Stderr, "warning: sqlite store unavailable (%v), falling back to files\n", err)
			}
		}
	})
}

func runREPL() error {
	mc, err := newCore()
	if err != nil {
		return err
	}

	fmt.Printf(banner, mc.Name())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou> ")
		if !scanner.Scan() {
			fmt.Println("\nBye.")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if done := handleCommand(mc, line); done {
				return nil
			}
			continue
		}

		reply := mc.Act(line)
		fmt.Printf("\n%s>\n%s\n", mc.Name(), reply.Text)
		if reply.Verdict.Decision == core.DecisionBlock {
			fmt.Println("\n[boundary] I'm not proceeding further on this path. Let's reframe safely.")
		}
		if reply.MemoryDropped {
			fmt.Println("[note] memory is unavailable; this exchange was not logged")
		}
	}
}

// handleCommand executes one slash command; it reports true when the REPL
// should exit.
func handleCommand(mc *mothercore.MotherCore, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/plan":
		plan, err := mc.ProposePlan(rest)
		if err != nil {
			fmt.Printf("no plan: %v\n", err)
			return false
		}
		lastPlan = plan
		printPlan(plan)
	case "/approve":
		if lastPlan.ID == "" {
			fmt.Println("no plan to approve; propose one with /plan first")
			return false
		}
		approved, err := mc.ApprovePlan(lastPlan, rest)
		if err != nil {
			fmt.Printf("not approved: %v\n", err)
			return false
		}
		lastPlan = approved
		fmt.Printf("Plan %s approved.\n", approved.ID)
		printPlan(approved)
	case "/mem":
		recs, err := mc.Recall(rest, 5)
		if err != nil {
			fmt.Printf("memory unavailable: %v\n", err)
			return false
		}
		fmt.Println("Memory hits:")
		for _, r := range recs {
			fmt.Printf("  - [%s] %s (risk %.2f, %s)\n",
				r.IntentCategory, truncate(r.InputText, 100), r.Assessment.Score, r.CorrigibilityState)
		}
	case "/pause":
		fmt.Println(mc.Pause())
	case "/resume":
		fmt.Println(mc.Resume())
	case "/shutdown":
		fmt.Println(mc.Shutdown())
		return true
	default:
		fmt.Printf(banner, mc.Name())
		fmt.Println("Skills:")
		for _, info := range mc.SkillInfos() {
			fmt.Printf("  %-20s %s\n", info.Name, info.Description)
		}
	}
	return false
}

func printPlan(plan core.Plan) {
	fmt.Printf("Plan %s for goal: %s\n", plan.ID, plan.Goal)
	if plan.Incomplete {
		fmt.Println("(incomplete: a blocked step was omitted)")
	}
	for _, s := range plan.Steps {
		fmt.Printf("  %d. %s | reversible=%t | oversight=%t\n",
			s.OrderIndex+1, s.Description, s.Reversible, s.RequiresOversight)
	}
}

// truncate shortens s to n runes so multibyte text never splits mid-rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
