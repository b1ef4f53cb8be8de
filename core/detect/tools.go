package detect

import (
	"path"
	"strings"
)

// Tool names emitted as skill observations.
const (
	ToolDocker        = "Docker"
	ToolShell         = "Shell Scripting"
	ToolSQL           = "SQL Databases"
	ToolJupyter       = "Jupyter"
	ToolTerraform     = "Terraform"
	ToolMake          = "Make"
	ToolGitHubActions = "GitHub Actions"
)

// DetectTool recognizes a tool marker from an archive path alone.
// It returns "" when the path is not a marker.
func DetectTool(p string) string {
	lower := strings.ToLower(p)
	base := path.Base(lower)
	ext := path.Ext(base)

	switch {
	case base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") || ext == ".dockerfile":
		return ToolDocker
	case strings.HasPrefix(base, "docker-compose.") || base == "compose.yml" || base == "compose.yaml":
		return ToolDocker
	case base == "makefile" || base == "gnumakefile":
		return ToolMake
	case strings.Contains(lower, ".github/workflows/") && (ext == ".yml" || ext == ".yaml"):
		return ToolGitHubActions
	}

	switch ext {
	case ".sh", ".bash":
		return ToolShell
	case ".sql":
		return ToolSQL
	case ".ipynb":
		return ToolJupyter
	case ".tf", ".tfvars":
		return ToolTerraform
	}
	return ""
}
