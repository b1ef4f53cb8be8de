package detect

import (
	"testing"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/main.go", "Go"},
		{"app/Component.TSX", "TypeScript"},
		{"README.md", "Markdown"},
		{"docs/notes.txt", ""},
		{"assets/logo.png", ""},
		{"config/settings.yaml", "YAML"},
		{".git/logs/HEAD", ""},
		{"node_modules/left-pad/index.coffee", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.path))
		})
	}
}

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		path string
		want schema.ActivityKind
	}{
		{"main.py", schema.CodeActivity},
		{"query.sql", schema.CodeActivity},
		{"README.md", schema.DocActivity},
		{"guide.rst", schema.DocActivity},
		{"notes.txt", schema.DocActivity},
		{"logo.PNG", schema.AssetActivity},
		{"data.csv", schema.AssetActivity},
		{"package.json", schema.OtherActivity},
		{"styles.css", schema.OtherActivity},
		{"Makefile", schema.OtherActivity},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyActivity(tt.path))
		})
	}
}

func TestIsGitLogPath(t *testing.T) {
	assert.True(t, IsGitLogPath("project/.git/logs/HEAD"))
	assert.True(t, IsGitLogPath(".git/logs/refs/heads/main"))
	assert.False(t, IsGitLogPath(".git/HEAD"))
}

func TestDetectTool(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Dockerfile", ToolDocker},
		{"deploy/Dockerfile.prod", ToolDocker},
		{"docker-compose.yml", ToolDocker},
		{"scripts/build.sh", ToolShell},
		{"db/schema.sql", ToolSQL},
		{"notebooks/eda.ipynb", ToolJupyter},
		{"infra/main.tf", ToolTerraform},
		{"infra/prod.tfvars", ToolTerraform},
		{"Makefile", ToolMake},
		{".github/workflows/ci.yml", ToolGitHubActions},
		{"config/ci.yml", ""},
		{"src/main.go", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTool(tt.path))
		})
	}
}

func TestManifestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want ManifestKind
	}{
		{"web/package.json", PackageJSON},
		{"requirements.txt", Requirements},
		{"requirements-dev.txt", Requirements},
		{"pyproject.toml", PyProject},
		{"Pipfile", Pipfile},
		{"Cargo.toml", CargoToml},
		{"go.mod", GoMod},
		{"composer.json", ComposerJSON},
		{"Gemfile", Gemfile},
		{"app/pubspec.yaml", Pubspec},
		{"environment.yml", CondaEnvironment},
		{"node_modules/react/package.json", NoManifest},
		{"src/main.go", NoManifest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ManifestKindOf(tt.path))
		})
	}
}

func TestDetectFrameworks(t *testing.T) {
	tests := []struct {
		name    string
		kind    ManifestKind
		content string
		want    []string
	}{
		{
			name:    "package.json",
			kind:    PackageJSON,
			content: `{"dependencies":{"react":"^18","Express":"4"},"devDependencies":{"jest":"29"},"peerDependencies":"bad"}`,
			want:    []string{"Express", "Jest", "React"},
		},
		{
			name:    "requirements",
			kind:    Requirements,
			content: "# comment\nDjango==4.2\nflask>=2\n-r base.txt\nrequests\nnumpy[extra]<=2\n",
			want:    []string{"Django", "Flask", "NumPy"},
		},
		{
			name: "pyproject",
			kind: PyProject,
			content: `[project]
dependencies = ["fastapi>=0.100", "uvicorn"]

[tool.poetry.dependencies]
python = "^3.11"
pandas = "^2.0"
`,
			want: []string{"FastAPI", "pandas"},
		},
		{
			name:    "pipfile",
			kind:    Pipfile,
			content: "[packages]\nflask = \"*\"\n\n[dev-packages]\npytest = \"*\"\n",
			want:    []string{"Flask"},
		},
		{
			name:    "cargo",
			kind:    CargoToml,
			content: "[package]\nname = \"svc\"\n\n[dependencies]\naxum = \"0.7\"\ntokio = { version = \"1\", features = [\"full\"] }\n",
			want:    []string{"Axum", "Tokio"},
		},
		{
			name:    "go.mod",
			kind:    GoMod,
			content: "module example.com/svc\n\ngo 1.22\n\nrequire (\n\tgithub.com/gin-gonic/gin v1.9.1\n\tgithub.com/labstack/echo/v4 v4.11.0 // indirect\n)\n\nrequire github.com/spf13/cobra v1.8.0\n",
			want:    []string{"Cobra", "Echo", "Gin"},
		},
		{
			name:    "composer",
			kind:    ComposerJSON,
			content: `{"require":{"php":">=8.1","laravel/framework":"^10.0"}}`,
			want:    []string{"Laravel"},
		},
		{
			name:    "gemfile",
			kind:    Gemfile,
			content: "source 'https://rubygems.org'\ngem 'rails', '~> 7.0'\ngem \"puma\"\n",
			want:    []string{"Ruby on Rails"},
		},
		{
			name:    "pubspec",
			kind:    Pubspec,
			content: "name: app\ndependencies:\n  flutter:\n    sdk: flutter\n  http: ^1.0.0\n",
			want:    []string{"Flutter"},
		},
		{
			name:    "conda",
			kind:    CondaEnvironment,
			content: "name: ml\ndependencies:\n  - numpy=1.26\n  - python=3.11\n  - pip:\n    - torch==2.1\n",
			want:    []string{"NumPy", "PyTorch"},
		},
		{
			name:    "unknown kind",
			kind:    NoManifest,
			content: "anything",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFrameworks(tt.kind, []byte(tt.content))
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFrameworksMalformed(t *testing.T) {
	for _, kind := range []ManifestKind{PackageJSON, ComposerJSON, PyProject, Pipfile, CargoToml, Pubspec, CondaEnvironment} {
		t.Run(string(kind), func(t *testing.T) {
			got, err := DetectFrameworks(kind, []byte("{[ this is : not = valid"))
			assert.Error(t, err)
			assert.Empty(t, got)
		})
	}
}

// FuzzDetectFrameworks ensures manifest parsing never panics.
func FuzzDetectFrameworks(f *testing.F) {
	f.Add(`{"dependencies":{"react":"1"}}`)
	f.Add("Django==4\n")
	f.Add("[dependencies]\naxum = \"1\"\n")

	kinds := []ManifestKind{PackageJSON, Requirements, PyProject, Pipfile, CargoToml, GoMod, ComposerJSON, Gemfile, Pubspec, CondaEnvironment}
	f.Fuzz(func(_ *testing.T, content string) {
		for _, kind := range kinds {
			_, _ = DetectFrameworks(kind, []byte(content))
		}
	})
}
