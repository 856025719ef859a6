// Package help holds the quick-start text printed by `veritas quickstart`.
package help

const QuickstartYAML = `# veritas Quick Start

inputs:
  url: "Fetch one or more pages, extract signals, score them"
  file: "Score saved markup; --url gives the page address for link classification"
  text: "Score pasted text (no markup); reads --path or --stdin"
  score: "Rescore a serialized AnalysisData record (json or yaml)"

output:
  format: "json (default) or yaml, via --format or output.format in veritas.yaml"
  out: "file path for single reports, directory for url batches (default output.dir)"
  summary: "--summary adds the signal map handed to a summarizer"

commands:
  single_url: |
    veritas url --urls "https://example.com/news/story"

  batch: |
    veritas url --urls "https://a.example/x,https://b.example/y" --workers 4 --out reports/

  saved_page: |
    veritas file --path page.html --url "https://example.com/news/story"

  pasted_text: |
    pbpaste | veritas text --stdin

  rescore_with_tuned_weights: |
    veritas --config tuned.yaml score --path reports/data.json

  history: |
    veritas --record url --urls "https://example.com"
    veritas history --limit 20 --tags 5

config_file: |
  # veritas.yaml; every key is optional
  fetch:
    timeout: 20s
    cache_dir: veritas-cache
    cache_ttl: 24h
    workers: 4
  scoring:
    author_missing: 15
    readability_threshold: 30
  lexicon:
    version: local-1
    loaded_language: [shocking, outrageous]
  db:
    path: ./veritas.db
  output:
    format: json
    dir: reports
`
