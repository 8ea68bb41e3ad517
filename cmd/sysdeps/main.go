// Command sysdeps resolves build dependencies to system-installed artifacts.
//
// Usage:
//
//	# Resolve coordinates or package URLs to installed files
//	sysdeps resolve junit:junit:4.13.2 pkg:maven/org.hamcrest/hamcrest-core
//
//	# Replace bundled archives in a build tree with links
//	sysdeps subst --strict target/
//
//	# Show which package owns a file
//	sysdeps owner /usr/share/java/junit.jar
//
//	# Print the merged configuration
//	sysdeps config
package main

func main() {
	Execute()
}
