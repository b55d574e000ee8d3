package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los específicos envuelven ErrNotFound: los llamadores pueden chequear el
// genérico o el específico con errors.Is, según lo que necesiten distinguir.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProductNotFound  = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("categoría no encontrada: %w", ErrNotFound)
	ErrProviderNotFound = fmt.Errorf("proveedor no encontrado: %w", ErrNotFound)
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
)
