package constant

// ProjectName is used for the binary name, config directories and env prefix.
const ProjectName = "flashcfg"

// EnvPrefix prefixes environment variables read by the CLI.
const EnvPrefix = "FLASHCFG"
