package design

import (
	"fmt"
	"strings"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

// MaterialSource resolves material references. *epicdb.DB implements it.
type MaterialSource interface {
	Material(id string) (epic.Material, error)
	Suggest(name string, limit int) []string
}

// Resolve looks up every material reference and builds the asset the
// document defines. Failed lookups name the closest database materials.
func (d *Document) Resolve(source MaterialSource) (*epic.BuiltAsset, error) {
	asset := &epic.BuiltAsset{
		Name:       d.Name,
		Comments:   d.Comments,
		Assemblies: make([]*epic.Assembly, 0, len(d.Assemblies)),
	}

	for _, assemblyDef := range d.Assemblies {
		units, err := epic.ParseUnit(assemblyDef.Units)
		if err != nil {
			return nil, fmt.Errorf("assembly %q: %w", assemblyDef.Name, err)
		}

		assembly := &epic.Assembly{
			Name:                assemblyDef.Name,
			Category:            assemblyDef.Category,
			Comments:            assemblyDef.Comments,
			Units:               units,
			Quantities:          assemblyDef.Quantities,
			WastageOverride:     assemblyDef.Wastage,
			ServiceLifeOverride: assemblyDef.ServiceLife,
			Components:          make([]epic.Component, 0, len(assemblyDef.Materials)),
		}

		for _, materialDef := range assemblyDef.Materials {
			material, err := source.Material(materialDef.Material)
			if err != nil {
				if suggestions := source.Suggest(materialDef.Material, 3); len(suggestions) > 0 {
					return nil, fmt.Errorf("assembly %q: %w, closest matches: %s",
						assemblyDef.Name, err, strings.Join(suggestions, ", "))
				}
				return nil, fmt.Errorf("assembly %q: %w", assemblyDef.Name, err)
			}

			if materialDef.Wastage != nil {
				material.Wastage = *materialDef.Wastage
			}
			if materialDef.ServiceLife != nil {
				material.ServiceLife = *materialDef.ServiceLife
			}
			material.Reductions = epic.Flows{
				Energy: materialDef.EnergyReduction,
				Water:  materialDef.WaterReduction,
				GHG:    materialDef.GHGReduction,
			}
			material.Comments = materialDef.Comments

			assembly.Components = append(assembly.Components, epic.Component{
				Material: material,
				Quantity: materialDef.Quantity,
			})
		}

		asset.Assemblies = append(asset.Assemblies, assembly)
	}

	return asset, nil
}
