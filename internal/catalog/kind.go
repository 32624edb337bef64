// Package catalog classifies directory entries by extension and formats
// their metadata for display.
package catalog

import (
	"path/filepath"
	"strings"
)

// Kind is the display classification of an entry.
type Kind int

const (
	KindOther Kind = iota
	KindFolder
	KindUnknown // metadata could not be read
	KindPython
	KindNotebook
	KindSQL
	KindText
	KindMarkdown
	KindCSV
	KindJSON
	KindXML
	KindYAML
	KindParquet
	KindDelta
	KindJAR
	KindScala
	KindR
	KindShell
	KindHTML
	KindCSS
	KindJavaScript
	KindImage
	KindPDF
	KindArchive
	KindLog
)

type kindInfo struct {
	label string
	icon  string
}

var kinds = map[Kind]kindInfo{
	KindOther:      {"File", "📄"},
	KindFolder:     {"Folder", "📁"},
	KindUnknown:    {"Unknown", "⚠️"},
	KindPython:     {"Python", "🐍"},
	KindNotebook:   {"Notebook", "📓"},
	KindSQL:        {"SQL", "🗃️"},
	KindText:       {"Text", "📄"},
	KindMarkdown:   {"Markdown", "📝"},
	KindCSV:        {"CSV", "📊"},
	KindJSON:       {"JSON", "📋"},
	KindXML:        {"XML", "📰"},
	KindYAML:       {"YAML", "⚙️"},
	KindParquet:    {"Parquet", "📦"},
	KindDelta:      {"Delta", "🔺"},
	KindJAR:        {"JAR", "☕"},
	KindScala:      {"Scala", "🔷"},
	KindR:          {"R Script", "📈"},
	KindShell:      {"Shell", "💻"},
	KindHTML:       {"HTML", "🌐"},
	KindCSS:        {"CSS", "🎨"},
	KindJavaScript: {"JavaScript", "⚡"},
	KindImage:      {"Image", "🖼️"},
	KindPDF:        {"PDF", "📕"},
	KindArchive:    {"Archive", "🗜️"},
	KindLog:        {"Log", "📜"},
}

var extensions = map[string]Kind{
	".py":      KindPython,
	".ipynb":   KindNotebook,
	".sql":     KindSQL,
	".txt":     KindText,
	".md":      KindMarkdown,
	".csv":     KindCSV,
	".json":    KindJSON,
	".xml":     KindXML,
	".yaml":    KindYAML,
	".yml":     KindYAML,
	".parquet": KindParquet,
	".delta":   KindDelta,
	".jar":     KindJAR,
	".scala":   KindScala,
	".r":       KindR,
	".sh":      KindShell,
	".html":    KindHTML,
	".css":     KindCSS,
	".js":      KindJavaScript,
	".png":     KindImage,
	".jpg":     KindImage,
	".jpeg":    KindImage,
	".gif":     KindImage,
	".pdf":     KindPDF,
	".zip":     KindArchive,
	".tar":     KindArchive,
	".gz":      KindArchive,
	".log":     KindLog,
}

// Classify returns the kind for an entry name. Directories are always
// KindFolder; unrecognised extensions map to KindOther.
func Classify(name string, isDir bool) Kind {
	if isDir {
		return KindFolder
	}
	if kind, ok := extensions[Extension(name)]; ok {
		return kind
	}
	return KindOther
}

// Extension returns the lower-cased extension of name including the dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Label returns the kind's display label.
func (k Kind) Label() string {
	if info, ok := kinds[k]; ok {
		return info.label
	}
	return kinds[KindOther].label
}

// Icon returns the kind's icon.
func (k Kind) Icon() string {
	if info, ok := kinds[k]; ok {
		return info.icon
	}
	return kinds[KindOther].icon
}

func (k Kind) String() string {
	return k.Label()
}

// TypeLabel is the label shown in the type column. Unrecognised extensions
// show the extension itself ("GO" for main.go) rather than the generic label.
func TypeLabel(kind Kind, name string) string {
	if kind != KindOther {
		return kind.Label()
	}
	ext := Extension(name)
	if len(ext) > 1 {
		return strings.ToUpper(ext[1:])
	}
	return kind.Label()
}
