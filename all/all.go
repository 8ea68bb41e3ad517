// Package all imports all supported repository layouts.
//
// Import this package for its side effects to register every layout:
//
//	import (
//		"github.com/git-pkgs/sysdeps"
//		_ "github.com/git-pkgs/sysdeps/all"
//	)
//
//	// Now all layouts are available
//	layouts := sysdeps.SupportedLayouts()
//	// ["flat", "jpp", "maven"]
package all

import (
	_ "github.com/git-pkgs/sysdeps/internal/flat"
	_ "github.com/git-pkgs/sysdeps/internal/jpp"
	_ "github.com/git-pkgs/sysdeps/internal/maven"
)
