// Package detect classifies archive entries by language, activity kind,
// framework manifests and tool markers.
package detect

import (
	"path"
	"strings"

	"github.com/folioscope/folio/schema"
	"github.com/src-d/enry/v2"
)

var extensionLanguage = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".jsx":   "JavaScript",
	".java":  "Java",
	".rb":    "Ruby",
	".go":    "Go",
	".rs":    "Rust",
	".c":     "C",
	".cpp":   "C++",
	".h":     "C",
	".hpp":   "C++",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".m":     "Objective-C",
	".php":   "PHP",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "CSS",
	".md":    "Markdown",
	".json":  "JSON",
	".yml":   "YAML",
	".yaml":  "YAML",
	".sql":   "SQL",
	".sh":    "Shell",
	".bat":   "Batchfile",
	".ps1":   "PowerShell",
}

// nonCodeLanguageExtensions have a language but are not counted as code activity.
var nonCodeLanguageExtensions = map[string]struct{}{
	".md": {}, ".json": {}, ".yaml": {}, ".yml": {}, ".html": {}, ".css": {}, ".scss": {},
}

var docExtensions = map[string]struct{}{
	".md": {}, ".rst": {}, ".txt": {},
}

var assetExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".pdf": {}, ".csv": {},
}

// extension returns the lowercased extension of an archive path.
func extension(p string) string {
	return strings.ToLower(path.Ext(p))
}

// DetectLanguage returns the language of an archive path, or "" when unknown.
// The extension table is authoritative; enry is consulted only for
// unlisted extensions outside vendored and VCS directories, and only
// programming languages are accepted from it.
func DetectLanguage(p string) string {
	ext := extension(p)
	if lang, ok := extensionLanguage[ext]; ok {
		return lang
	}
	if _, ok := docExtensions[ext]; ok {
		return ""
	}
	if _, ok := assetExtensions[ext]; ok {
		return ""
	}
	if isVCSPath(p) || enry.IsVendor(p) {
		return ""
	}
	lang := enry.GetLanguage(path.Base(p), nil)
	if lang == "" || enry.GetLanguageType(lang) != enry.Programming {
		return ""
	}
	return lang
}

// ClassifyActivity buckets an archive path by extension category.
func ClassifyActivity(p string) schema.ActivityKind {
	ext := extension(p)
	if _, ok := docExtensions[ext]; ok {
		return schema.DocActivity
	}
	if _, ok := extensionLanguage[ext]; ok {
		if _, nonCode := nonCodeLanguageExtensions[ext]; !nonCode {
			return schema.CodeActivity
		}
	}
	if _, ok := assetExtensions[ext]; ok {
		return schema.AssetActivity
	}
	return schema.OtherActivity
}

// IsGitLogPath reports whether an entry holds version-control log text.
func IsGitLogPath(p string) bool {
	return strings.Contains(strings.ToLower(p), ".git/logs/")
}

func isVCSPath(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, ".git/") || strings.Contains(lower, "/.git/")
}
