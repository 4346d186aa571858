package app

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/identity"
)

// checkAdmin creates the default account, or restores its password when
// it was blanked.
func (a *Application) checkAdmin() {
	const adminEmail = "admin@vinoteca.local"
	const defaultPassword = "vinoteca"

	var acc domain.Account
	err := a.gormDB.Where("email = ?", adminEmail).First(&acc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashedPassword, err := identity.HashPassword(defaultPassword)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		if err := a.gormDB.Create(&domain.Account{
			Name:     "administrator",
			Email:    adminEmail,
			Password: hashedPassword,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", adminEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	if acc.Password != "" {
		return
	}
	hashedPassword, err := identity.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}
	if err := a.gormDB.Model(&domain.Account{}).Where("id = ?", acc.ID).Updates(map[string]interface{}{
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account", zap.String("email", adminEmail))
}

// checkDenominations initializes common Spanish designations of origin
func (a *Application) checkDenominations() {
	defaults := []domain.Denomination{
		{Nombre: "Rioja", Descripcion: "D.O.Ca. Rioja"},
		{Nombre: "Ribera del Duero", Descripcion: "D.O. Ribera del Duero"},
		{Nombre: "Rueda", Descripcion: "D.O. Rueda"},
		{Nombre: "Priorat", Descripcion: "D.O.Ca. Priorat"},
		{Nombre: "Rías Baixas", Descripcion: "D.O. Rías Baixas"},
		{Nombre: "Cava", Descripcion: "D.O. Cava"},
	}
	for _, d := range defaults {
		var count int64
		a.gormDB.Model(&domain.Denomination{}).Where("nombre = ?", d.Nombre).Count(&count)
		if count > 0 {
			continue
		}
		if err := a.gormDB.Create(&d).Error; err != nil {
			zap.L().Error("failed to create default denomination", zap.String("nombre", d.Nombre), zap.Error(err))
		} else {
			zap.L().Info("initialized default denomination", zap.String("nombre", d.Nombre))
		}
	}
}

// checkTypes initializes the basic wine types
func (a *Application) checkTypes() {
	defaults := []domain.ProductType{
		{Nombre: "Tinto", Descripcion: "Vino tinto"},
		{Nombre: "Blanco", Descripcion: "Vino blanco"},
		{Nombre: "Rosado", Descripcion: "Vino rosado"},
		{Nombre: "Espumoso", Descripcion: "Vino espumoso"},
	}
	for _, t := range defaults {
		var count int64
		a.gormDB.Model(&domain.ProductType{}).Where("nombre = ?", t.Nombre).Count(&count)
		if count > 0 {
			continue
		}
		if err := a.gormDB.Create(&t).Error; err != nil {
			zap.L().Error("failed to create default type", zap.String("nombre", t.Nombre), zap.Error(err))
		} else {
			zap.L().Info("initialized default type", zap.String("nombre", t.Nombre))
		}
	}
}
