/*
Package config manages configuration parsing and validation for rebrand.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Loads .rebrand.yaml, .rebrand.yml, .rebrand.json or .rebrand.hcl
- Supplies the walk policy (ignored dirs, ignored file globs, binary extensions)
- Supplies the local backend guard settings

🔄 Flow:
1. Discover finds a config file (or falls back to Default)
2. The parser registered for the extension decodes it, rejecting unknown fields
3. ApplyDefaults fills anything the file left out
4. The CLI overlays flags, then calls Validate

Validation returns a *ValidationError naming the offending field, so callers
use errors.As instead of inspecting messages.

🔍 Example:

	from: Beaker Stack
	to: Acme App
	strict: true
	ignore_dirs: [node_modules, .git, ios/Pods]
	supabase:
	  enabled: false
*/
package config
