package completion

import "fmt"

// Bash generates bash completion script
func Bash() {
	script := `# bash completion for sitemapd
_sitemapd_completion() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [ $COMP_CWORD -eq 1 ]; then
        opts="serve config completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Subcommand completion
    case "${COMP_WORDS[1]}" in
        serve)
            opts="-a --addr -d --dir --prefix --threshold --rate-limit --journal --no-gzip -v --verbose -h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            # Directory completion for -d/--dir
            if [[ ${prev} == "-d" || ${prev} == "--dir" ]]; then
                COMPREPLY=( $(compgen -d -- ${cur}) )
            fi
            ;;
        config)
            if [ $COMP_CWORD -eq 2 ]; then
                opts="init show edit path"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                opts="bash zsh fish powershell"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _sitemapd_completion sitemapd
`
	fmt.Print(script)
}
