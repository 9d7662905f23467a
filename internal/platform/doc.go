package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers, .m3u playlist parsing, site playlist expansion, and
// OS open/reveal commands.
