package completion

import "fmt"

// Fish generates fish completion script
func Fish() {
	script := `# fish completion for sitemapd

# Main commands
complete -c sitemapd -f -n '__fish_use_subcommand' -a serve -d 'Serve sitemap files over HTTP'
complete -c sitemapd -f -n '__fish_use_subcommand' -a config -d 'Manage configuration file'
complete -c sitemapd -f -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'

# serve command
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -s a -l addr -d 'Listen address'
complete -c sitemapd -n '__fish_seen_subcommand_from serve' -s d -l dir -d 'Sitemap directory'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -l prefix -d 'URL path prefix'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -l threshold -d 'Attachment size threshold in bytes'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -l rate-limit -d 'Bandwidth limit per client in Mbps'
complete -c sitemapd -n '__fish_seen_subcommand_from serve' -l journal -d 'Journal database path'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -l no-gzip -d 'Disable gzip compression'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -s v -l verbose -d 'Verbose logging'
complete -c sitemapd -f -n '__fish_seen_subcommand_from serve' -s h -l help -d 'Show help'

# config command
complete -c sitemapd -f -n '__fish_seen_subcommand_from config' -a 'init' -d 'Initialize configuration interactively'
complete -c sitemapd -f -n '__fish_seen_subcommand_from config' -a 'show' -d 'Display current configuration'
complete -c sitemapd -f -n '__fish_seen_subcommand_from config' -a 'edit' -d 'Open config file in editor'
complete -c sitemapd -f -n '__fish_seen_subcommand_from config' -a 'path' -d 'Show config file path'

# completion command
complete -c sitemapd -f -n '__fish_seen_subcommand_from completion' -a 'bash' -d 'Bash completion'
complete -c sitemapd -f -n '__fish_seen_subcommand_from completion' -a 'zsh' -d 'Zsh completion'
complete -c sitemapd -f -n '__fish_seen_subcommand_from completion' -a 'fish' -d 'Fish completion'
complete -c sitemapd -f -n '__fish_seen_subcommand_from completion' -a 'powershell' -d 'PowerShell completion'
`
	fmt.Print(script)
}
