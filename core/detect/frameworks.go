package detect

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/src-d/enry/v2"
	"gopkg.in/yaml.v3"
)

// ManifestKind identifies a dependency manifest format.
type ManifestKind string

// Supported manifest kinds.
const (
	NoManifest       ManifestKind = ""
	PackageJSON      ManifestKind = "package.json"
	Requirements     ManifestKind = "requirements.txt"
	PyProject        ManifestKind = "pyproject.toml"
	Pipfile          ManifestKind = "Pipfile"
	CargoToml        ManifestKind = "Cargo.toml"
	GoMod            ManifestKind = "go.mod"
	ComposerJSON     ManifestKind = "composer.json"
	Gemfile          ManifestKind = "Gemfile"
	Pubspec          ManifestKind = "pubspec.yaml"
	CondaEnvironment ManifestKind = "environment.yml"
)

// knownFrameworks maps lowercased dependency names to framework labels.
var knownFrameworks = map[string]string{
	// JavaScript
	"@angular/core": "Angular",
	"react":         "React",
	"react-dom":     "React",
	"vue":           "Vue.js",
	"svelte":        "Svelte",
	"next":          "Next.js",
	"nuxt":          "Nuxt.js",
	"express":       "Express",
	"koa":           "Koa",
	"fastify":       "Fastify",
	"electron":      "Electron",
	"@nestjs/core":  "NestJS",
	"jest":          "Jest",
	"vite":          "Vite",
	// Python
	"django":     "Django",
	"flask":      "Flask",
	"fastapi":    "FastAPI",
	"numpy":      "NumPy",
	"pandas":     "pandas",
	"tensorflow": "TensorFlow",
	"torch":      "PyTorch",
	// Ruby
	"rails":   "Ruby on Rails",
	"sinatra": "Sinatra",
	// PHP
	"laravel":                  "Laravel",
	"laravel/framework":        "Laravel",
	"symfony/framework-bundle": "Symfony",
	"symfony/symfony":          "Symfony",
	"slim/slim":                "Slim",
	"spring":                   "Spring",
	"org.springframework.boot": "Spring Boot",
	// Go
	"github.com/gin-gonic/gin": "Gin",
	"github.com/labstack/echo": "Echo",
	"github.com/gofiber/fiber": "Fiber",
	"github.com/go-chi/chi":    "Chi",
	"github.com/spf13/cobra":   "Cobra",
	"google.golang.org/grpc":   "gRPC",
	"github.com/gorilla/mux":   "Gorilla Mux",
	// Rust
	"actix-web": "Actix Web",
	"rocket":    "Rocket",
	"axum":      "Axum",
	"tokio":     "Tokio",
	// Dart
	"flutter": "Flutter",
}

var (
	requirementRe = regexp.MustCompile(`^([A-Za-z0-9_.\-]+)`)
	gemRe         = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"]`)
	goRequireRe   = regexp.MustCompile(`^\s*(?:require\s+)?([A-Za-z0-9_.\-~/]+)\s+v\d`)
	goMajorRe     = regexp.MustCompile(`/v\d+$`)
)

// ManifestKindOf returns the manifest kind of an archive path.
// Vendored copies are ignored.
func ManifestKindOf(p string) ManifestKind {
	if enry.IsVendor(p) {
		return NoManifest
	}
	base := strings.ToLower(path.Base(p))
	switch {
	case base == "package.json":
		return PackageJSON
	case strings.HasPrefix(base, "requirements") && strings.HasSuffix(base, ".txt"):
		return Requirements
	case base == "pyproject.toml":
		return PyProject
	case base == "pipfile":
		return Pipfile
	case base == "cargo.toml":
		return CargoToml
	case base == "go.mod":
		return GoMod
	case base == "composer.json":
		return ComposerJSON
	case base == "gemfile":
		return Gemfile
	case base == "pubspec.yaml" || base == "pubspec.yml":
		return Pubspec
	case base == "environment.yml" || base == "environment.yaml":
		return CondaEnvironment
	}
	return NoManifest
}

// DetectFrameworks parses a manifest and returns the sorted set of known frameworks.
// A parse failure returns an error and no frameworks.
func DetectFrameworks(kind ManifestKind, content []byte) ([]string, error) {
	var names []string
	var err error

	switch kind {
	case PackageJSON:
		names, err = jsonDependencies(content, "dependencies", "devDependencies", "peerDependencies")
	case ComposerJSON:
		names, err = jsonDependencies(content, "require", "require-dev")
	case Requirements:
		names = requirementNames(strings.Split(string(content), "\n"))
	case PyProject:
		names, err = pyprojectDependencies(content)
	case Pipfile:
		names, err = tomlTableKeys(content, "packages", "dev-packages")
	case CargoToml:
		names, err = tomlTableKeys(content, "dependencies", "dev-dependencies")
	case GoMod:
		names = goModules(content)
	case Gemfile:
		names = gemNames(content)
	case Pubspec:
		names, err = pubspecDependencies(content)
	case CondaEnvironment:
		names, err = condaDependencies(content)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", kind, err)
	}
	return matchFrameworks(names), nil
}

// matchFrameworks maps dependency names to framework labels as a sorted set.
func matchFrameworks(names []string) []string {
	seen := make(map[string]struct{})
	for _, name := range names {
		if fw, ok := knownFrameworks[strings.ToLower(strings.TrimSpace(name))]; ok {
			seen[fw] = struct{}{}
		}
	}
	return SortedSet(seen)
}

// SortedSet returns the keys of a set in ascending order.
func SortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func jsonDependencies(content []byte, sections ...string) ([]string, error) {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	var names []string
	for _, section := range sections {
		deps, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}
		for name := range deps {
			names = append(names, name)
		}
	}
	return names, nil
}

// requirementNames extracts package names from pip requirement lines.
func requirementNames(lines []string) []string {
	var names []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if m := requirementRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

func pyprojectDependencies(content []byte) ([]string, error) {
	tree, err := toml.LoadBytes(content)
	if err != nil {
		return nil, err
	}
	var names []string
	switch deps := tree.Get("project.dependencies").(type) {
	case []string:
		names = append(names, requirementNames(deps)...)
	case []any:
		var lines []string
		for _, d := range deps {
			if s, ok := d.(string); ok {
				lines = append(lines, s)
			}
		}
		names = append(names, requirementNames(lines)...)
	}
	for _, key := range []string{"tool.poetry.dependencies", "tool.poetry.dev-dependencies"} {
		if sub, ok := tree.Get(key).(*toml.Tree); ok {
			names = append(names, sub.Keys()...)
		}
	}
	return names, nil
}

func tomlTableKeys(content []byte, tables ...string) ([]string, error) {
	tree, err := toml.LoadBytes(content)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, table := range tables {
		if sub, ok := tree.Get(table).(*toml.Tree); ok {
			names = append(names, sub.Keys()...)
		}
	}
	return names, nil
}

// goModules lists required module paths with any major version suffix removed.
func goModules(content []byte) []string {
	var names []string
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "module ") {
			continue
		}
		if m := goRequireRe.FindStringSubmatch(line); m != nil {
			names = append(names, goMajorRe.ReplaceAllString(m[1], ""))
		}
	}
	return names
}

func gemNames(content []byte) []string {
	var names []string
	for _, line := range strings.Split(string(content), "\n") {
		if m := gemRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

func pubspecDependencies(content []byte) ([]string, error) {
	var doc struct {
		Dependencies    map[string]any `yaml:"dependencies"`
		DevDependencies map[string]any `yaml:"dev_dependencies"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	var names []string
	for name := range doc.Dependencies {
		names = append(names, name)
	}
	for name := range doc.DevDependencies {
		names = append(names, name)
	}
	return names, nil
}

// condaDependencies reads conda specs ("numpy=1.26") and nested pip lists.
func condaDependencies(content []byte) ([]string, error) {
	var doc struct {
		Dependencies []any `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	var lines []string
	for _, dep := range doc.Dependencies {
		switch v := dep.(type) {
		case string:
			lines = append(lines, strings.SplitN(v, "=", 2)[0])
		case map[string]any:
			if pip, ok := v["pip"].([]any); ok {
				for _, p := range pip {
					if s, ok := p.(string); ok {
						lines = append(lines, s)
					}
				}
			}
		}
	}
	return requirementNames(lines), nil
}
