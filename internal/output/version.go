package output

// SchemaVersion is the current version of the NDJSON record schema.
// Bump it on breaking changes to any record written by NDJSONWriter.
const SchemaVersion = 1
