// Package services implements the driving ports: the ingestion
// pipeline, semantic retrieval and the document catalog. Services
// depend only on driven port interfaces, never on concrete adapters.
package services
