// Package model defines the canonical Slingshot record types that every
// source-system translator populates and the package writer serializes.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal. This keeps the canonical
// schema the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - monetary amounts are Cents (int64)
//   - Every writable type implements Entity; its Header/Row field order is
//     the destination importer's compatibility surface and must not change
//   - Ids are int32 because the legacy key synthesizer produces 31-bit keys
package model
