// Copyright 2023 Niklas Kohl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bayes guesses transaction categories from past bookings with a
// naive Bayes classifier over the payee and purpose words.
package bayes

import (
	"math"
	"strings"
)

// Model is a classifier trained from categorized transactions.
type Model struct {
	trainings     int
	categoryCount map[string]int
	tokenCount    map[string]map[string]int
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		categoryCount: make(map[string]int),
		tokenCount:    make(map[string]map[string]int),
	}
}

// Update trains the model with one categorized transaction.
func (m *Model) Update(category string, texts ...string) {
	if category == "" {
		return
	}
	m.trainings++
	m.categoryCount[category]++
	for token := range tokenize(texts) {
		tc, ok := m.tokenCount[token]
		if !ok {
			tc = make(map[string]int)
			m.tokenCount[token] = tc
		}
		tc[category]++
	}
}

// Infer returns the most probable category for the given texts, or the
// empty string for an untrained model. Unseen tokens get a low but
// positive default probability, so partial matches still score.
func (m *Model) Infer(texts ...string) string {
	tokens := tokenize(texts)
	var (
		selected string
		max      = math.Inf(-1)
	)
	for category, count := range m.categoryCount {
		score := math.Log(float64(count) / float64(m.trainings))
		for token := range tokens {
			if tc, ok := m.tokenCount[token][category]; ok {
				score += math.Log(float64(tc) / float64(count))
			} else {
				score += math.Log(1.0 / float64(m.trainings))
			}
		}
		if score > max || (score == max && category < selected) {
			selected = category
			max = score
		}
	}
	return selected
}

func tokenize(texts []string) map[string]bool {
	tokens := make(map[string]bool)
	for _, text := range texts {
		for _, token := range strings.Fields(text) {
			tokens[strings.ToLower(token)] = true
		}
	}
	return tokens
}
