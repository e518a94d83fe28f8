package completion

import "fmt"

// Zsh generates zsh completion script
func Zsh() {
	script := `#compdef sitemapd

_sitemapd() {
    local curcontext="$curcontext" state line
    typeset -A opt_args

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            local commands=(
                'serve:Serve sitemap files over HTTP'
                'config:Manage configuration file'
                'completion:Generate shell completion scripts'
            )
            _describe 'command' commands
            ;;
        args)
            case $line[1] in
                serve)
                    _arguments \
                        {-a,--addr}'[Listen address]' \
                        {-d,--dir}'[Sitemap directory]:directory:_directories' \
                        '--prefix[URL path prefix]' \
                        '--threshold[Attachment size threshold in bytes]' \
                        '--rate-limit[Bandwidth limit per client in Mbps]' \
                        '--journal[Journal database path]:file:_files' \
                        '--no-gzip[Disable gzip compression]' \
                        {-v,--verbose}'[Verbose logging]' \
                        {-h,--help}'[Show help]'
                    ;;
                config)
                    local config_commands=(
                        'init:Initialize configuration interactively'
                        'show:Display current configuration'
                        'edit:Open config file in editor'
                        'path:Show config file path'
                    )
                    _describe 'config command' config_commands
                    ;;
                completion)
                    local shells=(
                        'bash:Bash completion'
                        'zsh:Zsh completion'
                        'fish:Fish completion'
                        'powershell:PowerShell completion'
                    )
                    _describe 'shell' shells
                    ;;
            esac
            ;;
    esac
}

_sitemapd "$@"
`
	fmt.Print(script)
}
