package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mediamerge/internal/medium"
)

// DecodeTSV reads a tab-separated composition table carrying one ingredient
// per row; rows sharing a recipe_id form one recipe in row order. The first
// row must be a header naming at least recipe_id and ingredient; recipe_name,
// solution, chebi_id, value, and unit columns are optional per row. Records
// are stamped with the given source name and file.
func DecodeTSV(r io.Reader, source, file string) ([]*medium.Recipe, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tsv header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var recipes []*medium.Recipe
	byID := make(map[string]*medium.Recipe)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tsv row: %w", err)
		}
		line++

		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		recipeID := cell("recipe_id")
		if recipeID == "" {
			return nil, fmt.Errorf("tsv line %d: missing recipe_id", line)
		}

		recipe, ok := byID[recipeID]
		if !ok {
			recipe = &medium.Recipe{
				ID:         recipeID,
				Name:       cell("recipe_name"),
				Source:     source,
				SourceFile: file,
			}
			byID[recipeID] = recipe
			recipes = append(recipes, recipe)
		}

		ing, err := rowIngredient(cell, line)
		if err != nil {
			return nil, err
		}
		if solution := cell("solution"); solution != "" {
			appendToSolution(recipe, solution, ing)
		} else {
			recipe.Ingredients = append(recipe.Ingredients, ing)
		}
	}
	return recipes, nil
}

func rowIngredient(cell func(string) string, line int) (medium.Ingredient, error) {
	ing := medium.Ingredient{PreferredTerm: cell("ingredient")}
	if id := cell("chebi_id"); id != "" {
		ing.Term = &medium.OntologyRef{ID: id}
	}
	if raw := cell("value"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return medium.Ingredient{}, fmt.Errorf("tsv line %d: bad value %q: %w", line, raw, err)
		}
		ing.Concentration = &medium.Concentration{Value: value, Unit: cell("unit")}
	}
	return ing, nil
}

func appendToSolution(recipe *medium.Recipe, name string, ing medium.Ingredient) {
	for i := range recipe.Solutions {
		if recipe.Solutions[i].PreferredTerm == name {
			recipe.Solutions[i].Composition = append(recipe.Solutions[i].Composition, ing)
			return
		}
	}
	recipe.Solutions = append(recipe.Solutions, medium.Solution{
		PreferredTerm: name,
		Composition:   []medium.Ingredient{ing},
	})
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("tsv header: duplicate column %q", name)
		}
		columns[name] = i
	}
	for _, required := range []string{"recipe_id", "ingredient"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("tsv header: missing required column %q", required)
		}
	}
	return columns, nil
}
