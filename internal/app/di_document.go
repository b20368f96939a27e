package app

import (
	"fmt"

	docHTTP "github.com/allisson/docshare/internal/document/http"
	docRepository "github.com/allisson/docshare/internal/document/repository"
	docUseCase "github.com/allisson/docshare/internal/document/usecase"
	userRepository "github.com/allisson/docshare/internal/user/repository"
)

// DocumentRepository returns the document repository based on database driver.
func (c *Container) DocumentRepository() (docUseCase.DocumentRepository, error) {
	var err error
	c.documentRepoInit.Do(func() {
		c.documentRepo, err = c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// UserDocumentRepository returns the membership back-reference repository
// based on database driver.
func (c *Container) UserDocumentRepository() (docUseCase.UserDocumentRepository, error) {
	var err error
	c.userDocRepoInit.Do(func() {
		c.userDocRepo, err = c.initUserDocumentRepository()
		if err != nil {
			c.initErrors["userDocRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userDocRepo"]; exists {
		return nil, storedErr
	}
	return c.userDocRepo, nil
}

// DocumentUseCase returns the document use case instance.
func (c *Container) DocumentUseCase() (docUseCase.DocumentUseCase, error) {
	var err error
	c.documentUseCaseInit.Do(func() {
		c.documentUseCase, err = c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// DocumentHandler returns the document HTTP handler instance.
func (c *Container) DocumentHandler() (*docHTTP.DocumentHandler, error) {
	var err error
	c.documentHandlerInit.Do(func() {
		c.documentHandler, err = c.initDocumentHandler()
		if err != nil {
			c.initErrors["documentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentHandler"]; exists {
		return nil, storedErr
	}
	return c.documentHandler, nil
}

// initDocumentRepository creates the document repository instance.
func (c *Container) initDocumentRepository() (docUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return docRepository.NewMySQLDocumentRepository(db), nil
	case "postgres":
		return docRepository.NewPostgreSQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserDocumentRepository creates the membership back-reference repository.
func (c *Container) initUserDocumentRepository() (docUseCase.UserDocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user document repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserDocumentRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase() (docUseCase.DocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for document use case: %w", err)
	}

	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	userDocRepo, err := c.UserDocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user document repository for document use case: %w", err)
	}

	useCase := docUseCase.NewDocumentUseCase(txManager, documentRepo, userDocRepo, c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
	}

	return docUseCase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initDocumentHandler creates the document HTTP handler.
func (c *Container) initDocumentHandler() (*docHTTP.DocumentHandler, error) {
	documentUC, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for document handler: %w", err)
	}

	return docHTTP.NewDocumentHandler(documentUC, c.Logger()), nil
}
