package database

import (
	"vesselos/internal/api/dto"
	"vesselos/internal/domain"
)

func ListVessels() ([]dto.VesselInfo, error) {
	var vessels []domain.Vessel
	if err := DB.Order("name").Find(&vessels).Error; err != nil {
		return nil, err
	}

	infos := make([]dto.VesselInfo, 0, len(vessels))
	for _, vessel := range vessels {
		infos = append(infos, dto.VesselInfo{
			ID:        vessel.ID,
			Name:      vessel.Name,
			IMONumber: vessel.IMONumber,
			Type:      vessel.Type,
			Status:    vessel.Status,
		})
	}
	return infos, nil
}

func GetVesselFromId(vesselID uint) (domain.Vessel, error) {
	var vessel domain.Vessel
	err := DB.First(&vessel, vesselID).Error
	return vessel, err
}

func CreateVessel(vessel *domain.Vessel) error {
	return DB.Create(vessel).Error
}
