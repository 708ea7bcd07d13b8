// Command skill-manager is the central entrypoint for managing skills
// (build, validate, publish) and the Supabase project that backs them.
package main

import "github.com/artificial-intelligence-first/aao-skeleton/internal/cli"

func main() {
	cli.Execute()
}
