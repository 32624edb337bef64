// Package shellsetup prints the shell function that lets fex change the
// calling shell's directory. The function points ResultEnv at a temp file;
// on quit-and-cd (x) fex writes the directory there and the function cds
// to it once fex exits.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
)

// ResultEnv names the variable holding the file fex writes its exit
// directory to.
const ResultEnv = "FEX_RESULT_FILE"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable is the fex binary the function calls. Defaults to
	// os.Executable.
	Executable string
}

// WriteResult hands dir to the shell wrapper. Without a wrapper the
// directory goes to out, so `cd "$(fex)"` also works: the UI itself draws
// on the terminal device, not on stdout.
func WriteResult(dir string, out io.Writer) error {
	if target := os.Getenv(ResultEnv); target != "" {
		return os.WriteFile(target, []byte(dir), 0o600)
	}
	_, err := fmt.Fprintln(out, dir)
	return err
}

const posixScript = `fex() {
    fex_result=$(mktemp "${TMPDIR:-/tmp}/fex_result.XXXXXX") || {
        command {{exe}} "$@"
        return $?
    }
    FEX_RESULT_FILE="$fex_result" command {{exe}} "$@"
    fex_status=$?
    if [ -s "$fex_result" ]; then
        fex_dest=$(cat "$fex_result")
        if [ -d "$fex_dest" ]; then
            cd "$fex_dest" || fex_status=$?
        fi
    fi
    rm -f "$fex_result"
    unset fex_result fex_dest
    return $fex_status
}
`

const fishScript = `function fex
    set -l tmp /tmp
    set -q TMPDIR; and set tmp $TMPDIR
    set -l fex_result (mktemp "$tmp/fex_result.XXXXXX")
    or begin
        command {{exe}} $argv
        return $status
    end
    env FEX_RESULT_FILE=$fex_result {{exe}} $argv
    set -l fex_status $status
    if test -s "$fex_result"
        set -l fex_dest (cat "$fex_result")
        test -d "$fex_dest"; and builtin cd "$fex_dest"
    end
    rm -f "$fex_result"
    return $fex_status
end
`

const pwshScript = `function fex {
    $resultFile = [System.IO.Path]::GetTempFileName()
    $env:FEX_RESULT_FILE = $resultFile
    try {
        & {{exe}} @args
    } finally {
        Remove-Item Env:FEX_RESULT_FILE -ErrorAction SilentlyContinue
    }
    $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue
    Remove-Item $resultFile -ErrorAction SilentlyContinue
    if ($dest) { $dest = $dest.Trim() }
    if ($dest -and (Test-Path $dest -PathType Container)) {
        Set-Location $dest
    }
}
`

const cmdScript = `:: Save as fex.cmd somewhere on PATH.
@echo off
set "FEX_RESULT_FILE=%TEMP%\fex_result_%RANDOM%%RANDOM%.txt"
set "FEX_DEST="
{{exe}} %*
set "FEX_STATUS=%errorlevel%"
if exist "%FEX_RESULT_FILE%" (
    set /p FEX_DEST=<"%FEX_RESULT_FILE%"
    del "%FEX_RESULT_FILE%" >nul 2>&1
)
set "FEX_RESULT_FILE="
if defined FEX_DEST cd /d "%FEX_DEST%"
set "FEX_DEST="
exit /b %FEX_STATUS%
`

const cshScript = "alias fex 'set fex_dest = \"`{{exe}} \\!*`\"; if (\"$fex_dest\" != \"\") cd \"$fex_dest\"'\n"

// Script returns the wrapper for a canonical shell name. Unknown shells get
// the POSIX function.
func Script(shell, executable string) string {
	var tmpl, exe string
	switch shell {
	case "fish":
		tmpl, exe = fishScript, quoteFish(executable)
	case "pwsh":
		tmpl, exe = pwshScript, quotePwsh(executable)
	case "cmd":
		tmpl, exe = cmdScript, `"`+executable+`"`
	case "tcsh", "csh":
		tmpl, exe = cshScript, executable
	default:
		tmpl, exe = posixScript, quotePosix(executable)
	}
	return strings.ReplaceAll(tmpl, "{{exe}}", exe)
}

func quotePosix(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func quotePwsh(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// PrintSetup writes the wrapper for shellOverride, or for the detected shell
// when the override is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := canonicalShellName(normalizeShellName(shellOverride))
	if shell == "" {
		shell = detectShell(parent)
	}

	executable := cfg.Executable
	if executable == "" {
		var err error
		if executable, err = os.Executable(); err != nil {
			executable = "fex"
		}
	}

	_, err := io.WriteString(w, Script(shell, executable))
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell == "cmd" || shell == "pwsh" {
			return shell
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	case "dash", "ash", "mksh":
		return "sh"
	default:
		return name
	}
}

// normalizeShellName reduces a path or command line such as
// `"C:\Program Files\PowerShell\7\pwsh.exe" -NoLogo` to "pwsh".
func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if quote := value[0]; quote == '"' || quote == '\'' {
		value = value[1:]
		if idx := strings.IndexByte(value, quote); idx >= 0 {
			value = value[:idx]
		}
	} else if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		value = value[:idx]
	}
	if value == "" {
		return ""
	}

	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimPrefix(base, "-") // login shells appear as "-zsh"
	return strings.TrimSuffix(base, ".exe")
}
