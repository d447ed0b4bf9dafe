package ids

// Kind names a family of entities that share an id numbering scheme.
type Kind string

const (
	KindComponent         Kind = "component"
	KindParameter         Kind = "parameter"
	KindCalculation       Kind = "calculation"
	KindInstance          Kind = "instance"
	KindFlowNetwork       Kind = "flow-network"
	KindFlowNode          Kind = "flow-node"
	KindFlowEdge          Kind = "flow-edge"
	KindSimNetwork        Kind = "sim-network"
	KindSimBlock          Kind = "sim-block"
	KindSimPort           Kind = "sim-port"
	KindSimConnector      Kind = "sim-connector"
	KindTaxonomy          Kind = "taxonomy"
	KindTaxonomyEntry     Kind = "taxonomy-entry"
	KindResource          Kind = "resource"
	KindBigTable          Kind = "big-table"
	KindField3D           Kind = "field-3d"
	KindFunctionGraph     Kind = "function-graph"
	KindValueMapping      Kind = "value-mapping"
	KindUserList          Kind = "user-list"
	KindGeometricRelation Kind = "geometric-relation"
	KindGeoMap            Kind = "geo-map"
	KindExcelTool         Kind = "excel-tool"
)

// IsFlowElement reports whether entities of kind k live inside a flow network.
func (k Kind) IsFlowElement() bool {
	return k == KindFlowNetwork || k == KindFlowNode || k == KindFlowEdge
}
