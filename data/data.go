// Package data ships a sample count table so the tool runs without input.
package data

import _ "embed"

// EnglishQuadgrams is the head of the English quadgram count table from
// https://people.sc.fsu.edu/~jburkardt/datasets/ngrams/english_quadgrams.txt
//
//go:embed english_quadgrams_sample.txt
var EnglishQuadgrams string

// EnglishQuadgramsName labels the embedded table in logs and saved stats.
const EnglishQuadgramsName = "embedded:english_quadgrams"
