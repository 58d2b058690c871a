// cmd/hr-cli/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

const usage = `hr-cli - HR job-application tracker client

Usage:
  hr-cli login --username <name> [--password <pw>]
  hr-cli logout
  hr-cli whoami
  hr-cli passwd --current <pw> --new <pw> --confirm <pw>
  hr-cli titles [list|all|add <title>|rename <id> <title>|activate <id>|deactivate <id>|delete <id>]
  hr-cli apps [--status <route>] [--governorate g] [--area a] [--gender g] [--education e]
              [--min-age n] [--max-age n] [--q text] [--id text]
  hr-cli stats [--local]
  hr-cli export [--out <dir>]
  hr-cli validate [--step personal|job] <form.json>
  hr-cli watch [--interval 5m]

Configuration is read from configs/config.yaml (or HR_CONFIG) and the environment.
`

func help() {
	fmt.Fprint(os.Stderr, usage)
}

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		help()
		return
	}

	ctx := context.Background()
	os.Exit(run(ctx, cmd, args))
}

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, cmd string, args []string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()

	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "passwd":
		return a.cmdPasswd(ctx, args)
	case "titles":
		return a.cmdTitles(ctx, args)
	case "apps":
		return a.cmdApps(ctx, args)
	case "stats":
		return a.cmdStats(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	case "validate":
		return a.cmdValidate(args)
	case "watch":
		return a.cmdWatch(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		help()
		return 2
	}
}

func parseFlags(fs *flag.FlagSet, args []string) bool {
	fs.SetOutput(os.Stderr)
	return fs.Parse(args) == nil
}
