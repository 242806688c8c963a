package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"git-wait/config"
	"git-wait/gitdir"
	"git-wait/handoff"
	"git-wait/lockwait"
	"git-wait/log"
	"git-wait/ui"
)

var (
	version = "1.1.0"

	rootCmd = &cobra.Command{
		Use:   "git-wait [git arguments...]",
		Short: "Run git, waiting out .git/index.lock instead of failing on it",
		Long: "git-wait is a transparent wrapper around git. When another process holds\n" +
			".git/index.lock, plain git fails immediately; git-wait blocks until the lock\n" +
			"clears (or " + config.TimeoutEnvVar + " elapses), then hands the process over to git\n" +
			"with the original arguments.",
		Args: cobra.ArbitraryArgs,
		// Every argument belongs to git, including flags and --help.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}

	doctorCmd = &cobra.Command{
		Use:   "doctor",
		Short: "Print wrapper diagnostics (config, repository, lock state)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
)

func init() {
	// "doctor" is the one word withheld from forwarding; git has no
	// top-level command by that name.
	rootCmd.AddCommand(doctorCmd)

	// Cobra would otherwise claim "help" and "completion", which are real
	// git invocations and must forward.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
}

func run(args []string) error {
	cfg := config.LoadConfig()

	// A malformed timeout is fatal before any filesystem interaction; it
	// must never degrade into "wait forever".
	timeout, err := cfg.ResolveTimeout()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to read current directory: %w", err)
	}

	if lockPath, ok := pendingLock(cwd); ok {
		if !cfg.Quiet {
			fmt.Print(ui.Render("Waiting on index.lock... "))
		}
		log.InfoLog.Printf("waiting on %s (timeout %v)", lockPath, timeout)

		if err := lockwait.WaitForClear(lockPath, timeout); err != nil {
			return err
		}

		if !cfg.Quiet {
			fmt.Println(ui.Render("done!"))
		}
	}

	// No cleanup before the handoff: the log file descriptor is
	// close-on-exec and os.File writes are unbuffered.
	return handoff.Exec(cfg.DefaultProgram, args)
}

// pendingLock reports whether an index.lock currently blocks git operations
// for the repository containing dir, and where it is.
func pendingLock(dir string) (string, bool) {
	gitDir, ok := gitdir.Find(dir)
	if !ok {
		return "", false
	}
	if !gitdir.LockFileExists(gitDir) {
		return "", false
	}
	return gitdir.LockFilePath(gitDir), true
}

func runDoctor() error {
	cfg := config.LoadConfig()

	configDir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configJSON, _ := json.MarshalIndent(cfg, "", "  ")

	fmt.Printf("git-wait version %s\n", version)
	fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJSON)

	timeout, err := cfg.ResolveTimeout()
	if err != nil {
		return err
	}
	if timeout > 0 {
		fmt.Printf("Timeout: %v\n", timeout)
	} else {
		fmt.Println("Timeout: none (wait indefinitely)")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to read current directory: %w", err)
	}

	gitDir, ok := gitdir.Find(cwd)
	if !ok {
		fmt.Println("Repository: not inside a git repository")
		return nil
	}
	fmt.Printf("Repository: %s\n", gitDir)

	if gitdir.LockFileExists(gitDir) {
		fmt.Printf("Lock: %s is present\n", gitdir.LockFilePath(gitDir))
	} else {
		fmt.Println("Lock: index.lock not present")
	}

	// Best effort: a gitlink or a bare layout may not open cleanly, and
	// doctor should still print the rest.
	if repo, err := git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		if head, err := repo.Head(); err == nil {
			fmt.Printf("Branch: %s\n", head.Name().Short())
		}
	}

	return nil
}

func main() {
	log.Initialize()
	defer log.Close()

	if err := rootCmd.Execute(); err != nil {
		log.ErrorLog.Printf("%v", err)
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
