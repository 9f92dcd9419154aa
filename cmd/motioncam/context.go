package main

import (
	"fmt"
	"log"

	"github.com/ivlev/motioncam/internal/config"
	"github.com/ivlev/motioncam/internal/scene"
)

type commandContext struct {
	cfg *config.Config
}

// resolveInput returns the explicit scene path or the newest scene file
func (c *commandContext) resolveInput() (string, error) {
	if c.cfg.InputPath != "" {
		return c.cfg.InputPath, nil
	}
	latest, err := scene.FindLatest(c.cfg.ScenesDir)
	if err != nil {
		return "", fmt.Errorf("%w (run 'motioncam init' or pass --input)", err)
	}
	log.Printf("[*] Selected scene: %s", latest)
	return latest, nil
}

// loadScene reads, overrides and builds the scene for this run
func (c *commandContext) loadScene() (*scene.Scene, string, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, "", err
	}
	path, err := c.resolveInput()
	if err != nil {
		return nil, "", err
	}
	doc, err := scene.ReadDocument(path)
	if err != nil {
		return nil, path, err
	}
	if c.cfg.FPS > 0 {
		fps := c.cfg.FPS
		doc.FPS = &fps
	}
	s, err := scene.Build(doc)
	if err != nil {
		return nil, path, fmt.Errorf("invalid scene %s: %w", path, err)
	}
	return s, path, nil
}
