package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# prbump Configuration

# Record discovery
prdoc_dir: prdoc                      # Directory holding record files (relative to repo root)
pattern: "*.prdoc"                    # Filename glob record files must match

# Validation
strict: false                         # Treat unknown audience tags as errors

# Report settings
audiences:                            # Canonical audience section order
  - Runtime Dev
  - Runtime User
  - Node Dev
  - Node Operator

# Output
plain: false                          # Disable colors and icons

# Git integration
base_branch: main                     # Branch the 'changed' command diffs against
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"prdoc_dir": "prdoc",
		"pattern":   "*.prdoc",
		"strict":    false,
		// audiences: Canonical audience order for report sections. Audiences
		// outside this list appear after it in first-seen order.
		"audiences": []string{"Runtime Dev", "Runtime User", "Node Dev", "Node Operator"},
		"plain":     false,
		// base_branch: The 'changed' command lists record files added or
		// modified relative to this branch.
		"base_branch": "main",
	}
}
