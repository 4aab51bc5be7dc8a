package bootstrap

import (
	"sort"
	"strings"

	"github.com/kbukum/dotfiles/errors"
	"github.com/kbukum/dotfiles/process"
)

// PackageManager knows how to synchronize repositories and install
// packages with one system package manager.
type PackageManager struct {
	Name    string
	Program string
	// SyncArgs refresh the package database.
	SyncArgs []string
	// InstallArgs come before the package names, InstallSuffix after.
	InstallArgs   []string
	InstallSuffix []string
}

var packageManagers = map[string]PackageManager{
	"pacman": {
		Name:          "pacman",
		Program:       "pacman",
		SyncArgs:      []string{"-Sy"},
		InstallArgs:   []string{"-S"},
		InstallSuffix: []string{"--noconfirm"},
	},
	"apt": {
		Name:        "apt",
		Program:     "apt-get",
		SyncArgs:    []string{"update"},
		InstallArgs: []string{"install", "-y"},
	},
	"brew": {
		Name:        "brew",
		Program:     "brew",
		SyncArgs:    []string{"update"},
		InstallArgs: []string{"install"},
	},
	"dnf": {
		Name:        "dnf",
		Program:     "dnf",
		SyncArgs:    []string{"makecache"},
		InstallArgs: []string{"install", "-y"},
	},
}

// LookupPackageManager returns the package manager registered under name.
func LookupPackageManager(name string) (PackageManager, error) {
	pm, ok := packageManagers[name]
	if !ok {
		return PackageManager{}, errors.InvalidInput("package_manager",
			"unsupported package manager "+name+" (supported: "+strings.Join(PackageManagerNames(), ", ")+")")
	}
	return pm, nil
}

// PackageManagerNames lists the supported package managers in sorted order.
func PackageManagerNames() []string {
	names := make([]string, 0, len(packageManagers))
	for n := range packageManagers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SyncCommand returns the command that refreshes the package database.
func (m PackageManager) SyncCommand() process.Command {
	return process.NewCommand(m.Program, m.SyncArgs...)
}

// InstallCommand returns the command that installs pkgs non-interactively.
func (m PackageManager) InstallCommand(pkgs ...string) process.Command {
	args := make([]string, 0, len(m.InstallArgs)+len(pkgs)+len(m.InstallSuffix))
	args = append(args, m.InstallArgs...)
	args = append(args, pkgs...)
	args = append(args, m.InstallSuffix...)
	return process.NewCommand(m.Program, args...)
}
