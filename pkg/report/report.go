// Package report prints the setup instructions shown after a project is generated.
package report

import (
	"fmt"
	"io"
	"strings"

	"postgen/pkg/config"
	"postgen/pkg/git"
)

const (
	RStudioURL  = "http://localhost:8787"
	RStudioUser = "rstudio"
)

var rule = strings.Repeat("=", 60)

// Print writes the next-steps block for cfg to w.
// The GitHub section is included only when use_github is y.
func Print(w io.Writer, cfg config.Config) {
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	p("\n%s", rule)
	p("🎉 %s project created successfully!", cfg.ProjectName)
	p("%s", rule)

	p("\n📋 Next steps:")
	p("1. Navigate to your project directory:")
	p("   cd %s", cfg.ProjectSlug)
	p("\n2. Build and start the development environment:")
	p("   make build")
	p("   make up")
	p("\n3. Access RStudio Server:")
	p("   Open %s in your browser", RStudioURL)
	p("   Username: %s", RStudioUser)
	p("   Password: %s", cfg.RStudioServerPassword)
	p("\n4. Initialize renv (first time only):")
	p("   make renv-init")
	p("\n5. For VS Code development:")
	p("   - Install the 'Remote - Containers' extension")
	p("   - Open the project in VS Code")
	p("   - Click 'Reopen in Container'")

	p("\n📚 Documentation:")
	p("   - README.md: Complete project documentation")
	p("   - make help: Show available commands")
	p("   - docs/: Project documentation and examples")

	p("\n🔧 Useful commands:")
	p("   - make help: Show all available commands")
	p("   - make r-console: Open R console")
	p("   - make lint: Check code quality")
	p("   - make test: Run unit tests")

	if cfg.GitHubEnabled() {
		p("\n🔗 GitHub setup:")
		p("   1. Create a repository on GitHub:")
		p("      %s", git.RepoPageURL(cfg.GitHubUsername, cfg.ProjectSlug))
		p("   2. Push your changes:")
		p("      git push -u %s main", git.DefaultRemote)
	}

	p("\n✨ Happy coding!")
	p("%s", rule)
}
