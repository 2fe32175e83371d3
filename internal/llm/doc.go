// Package llm invokes the external reasoning service for creator insight and
// creator/product matching, validating the strict-JSON responses and mapping
// provider failures onto a closed error taxonomy.
package llm
