// Package action publishes the results of an upload run as GitHub Actions
// step outputs and reports failures as workflow error annotations.
//
// Outputs are written to the file named by GITHUB_OUTPUT. Outside of Actions,
// where that variable is unset, they are echoed as workflow commands.
package action
