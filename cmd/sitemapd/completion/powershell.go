package completion

import "fmt"

// Powershell generates PowerShell completion script
func Powershell() {
	script := `# PowerShell completion for sitemapd

Register-ArgumentCompleter -Native -CommandName sitemapd -ScriptBlock {
    param($commandName, $wordToComplete, $commandAst, $fakeBoundParameters)

    $commands = @(
        [System.Management.Automation.CompletionResult]::new('serve', 'serve', [System.Management.Automation.CompletionResultType]::ParameterValue, 'Serve sitemap files')
        [System.Management.Automation.CompletionResult]::new('config', 'config', [System.Management.Automation.CompletionResultType]::ParameterValue, 'Manage config')
        [System.Management.Automation.CompletionResult]::new('completion', 'completion', [System.Management.Automation.CompletionResultType]::ParameterValue, 'Generate completion')
    )

    $commands | Where-Object { $_.CompletionText -like "$wordToComplete*" }
}
`
	fmt.Print(script)
}
