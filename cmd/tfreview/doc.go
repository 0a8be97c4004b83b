// Tfreview asks an LLM to review a Terraform file and to annotate every block
// with a one-sentence comment.
//
// Usage:
//
//	tfreview                          # review inputs/main.tf, annotate recommit/main.tf
//	tfreview review                   # write outputs/review_report.txt only
//	tfreview annotate --dry-run       # print the annotated working copy
//	tfreview tokens infra/main.tf     # estimate prompt tokens, no API calls
//	tfreview config init              # write a default config.yaml
//
// Every token estimate is appended to outputs/tokenforecasts.log.
package main
